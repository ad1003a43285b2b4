package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/cube2222/octotable/config"
	"github.com/cube2222/octotable/datasources/json"
	"github.com/cube2222/octotable/logs"
	"github.com/cube2222/octotable/outputs"
	"github.com/cube2222/octotable/repl"
	"github.com/cube2222/octotable/table"
	"github.com/cube2222/octotable/viewcache"
	"github.com/cube2222/octotable/views"
)

var readConfig = config.Read

type rootOptions struct {
	view        string
	filters     []string
	sort        string
	desc        bool
	page        int
	pageSize    int
	hidden      []string
	output      string
	interactive bool
	profile     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "octotable <file.json>",
		Args:  cobra.ExactArgs(1),
		Short: "Browse JSON API payloads as filterable, sortable and paginated tables.",
		Long: `octotable loads a payload saved from one of the supported public APIs
(a JSON array or newline delimited JSON objects, "-" for standard input)
and prints a single page of it, or opens an interactive session.`,
		Example: `octotable --view countries countries.json
octotable --view posts --filter title=dolorem --sort id --desc posts.json
curl -s https://api.coingecko.com/api/v3/coins/markets?vs_currency=usd | octotable --view crypto -i -`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.profile {
			case "":
			case "cpu":
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
			case "mem":
				defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
			default:
				return fmt.Errorf("invalid profile mode '%s', expected cpu or mem", opts.profile)
			}

			cfg, err := readConfig()
			if err != nil {
				return fmt.Errorf("couldn't read config: %w", err)
			}
			return run(cmd, args[0], cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.view, "view", "", fmt.Sprintf("View to use, one of %s.", strings.Join(views.Names(), ", ")))
	cmd.Flags().StringArrayVar(&opts.filters, "filter", nil, "Column filter in the form column=value, may be repeated.")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Column to sort by, instead of the view's default.")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "Sort in descending order.")
	cmd.Flags().IntVar(&opts.page, "page", 1, "Page to show, starting at 1.")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Rows per page, one of the configured page sizes.")
	cmd.Flags().StringArrayVar(&opts.hidden, "hide", nil, "Column to hide, may be repeated.")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output format: table, json or csv.")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Open an interactive session.")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "Write a cpu or mem profile to the current directory.")
	cobra.CheckErr(cmd.MarkFlagRequired("view"))

	cmd.AddCommand(newViewsCmd())
	return cmd
}

func run(cmd *cobra.Command, path string, cfg *config.Config, opts *rootOptions) error {
	descriptor, err := views.Get(opts.view)
	if err != nil {
		return err
	}
	settings, err := buildSettings(cfg, descriptor.Name(), opts)
	if err != nil {
		return err
	}
	actions, err := initialActions(opts)
	if err != nil {
		return err
	}

	data, err := json.ReadFile(path)
	if err != nil {
		return err
	}
	handle, err := descriptor.Load(data, settings)
	if err != nil {
		return fmt.Errorf("couldn't load %s: %w", path, err)
	}
	if err := handle.Dispatch(actions...); err != nil {
		return fmt.Errorf("couldn't apply flags: %w", err)
	}

	output := cfg.Output
	if opts.output != "" {
		output = opts.output
	}
	printer, err := outputs.NewPrinter(cmd.OutOrStdout(), output, opts.interactive)
	if err != nil {
		return err
	}

	if !opts.interactive {
		page, err := handle.Page()
		if err != nil {
			return fmt.Errorf("couldn't compute page: %w", err)
		}
		return printer.Print(page)
	}

	if err := logs.InitializeFileLogger(config.OctotableDir); err != nil {
		return err
	}
	defer logs.CloseLogger()

	cache, err := viewcache.New(1 << 16)
	if err != nil {
		return err
	}
	defer cache.Close()

	return repl.NewSession(handle, cache, printer, cfg.PageSizes).Run()
}

// buildSettings merges the view's configuration with the flags, flags taking precedence.
func buildSettings(cfg *config.Config, view string, opts *rootOptions) (views.Settings, error) {
	viewConfig := cfg.View(view)
	settings := views.Settings{
		PageSize:   viewConfig.PageSize,
		Sort:       viewConfig.Sort,
		Descending: viewConfig.Desc,
		Hidden:     viewConfig.Hidden,
		Locale:     cfg.LocaleTag(),
	}
	if opts.pageSize != 0 {
		if !cfg.AllowedPageSize(opts.pageSize) {
			return views.Settings{}, fmt.Errorf("invalid page size %d, expected one of %v", opts.pageSize, cfg.PageSizes)
		}
		settings.PageSize = opts.pageSize
	}
	if opts.sort != "" {
		settings.Sort = opts.sort
		settings.Descending = false
	}
	if opts.desc {
		settings.Descending = true
	}
	if len(opts.hidden) > 0 {
		settings.Hidden = opts.hidden
	}
	return settings, nil
}

func initialActions(opts *rootOptions) ([]table.Action, error) {
	actions := make([]table.Action, 0, len(opts.filters)+1)
	for _, filter := range opts.filters {
		i := strings.Index(filter, "=")
		if i <= 0 {
			return nil, fmt.Errorf("invalid filter '%s', expected column=value", filter)
		}
		actions = append(actions, table.SetFilter{ColumnID: filter[:i], Value: filter[i+1:]})
	}
	if opts.page < 1 {
		return nil, fmt.Errorf("invalid page %d, pages start at 1", opts.page)
	}
	if opts.page > 1 {
		actions = append(actions, table.GoToPage{PageIndex: opts.page - 1})
	}
	return actions, nil
}

func Execute(ctx context.Context) {
	cobra.CheckErr(newRootCmd().ExecuteContext(ctx))
}
