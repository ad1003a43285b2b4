package views

import (
	"github.com/cube2222/octotable/octotable"
)

func nullableFloat(v *float64) octotable.Value {
	if v == nil {
		return octotable.NewNull()
	}
	return octotable.NewFloat(*v)
}

func nullableInt(v *float64) octotable.Value {
	if v == nil {
		return octotable.NewNull()
	}
	return octotable.NewInt(int(*v))
}

func nullableString(v string) octotable.Value {
	if v == "" {
		return octotable.NewNull()
	}
	return octotable.NewString(v)
}
