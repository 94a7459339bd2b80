package main

import (
	"reflect"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/tnebes/sme/shmap"
)

type intMapper struct {
	base int
}

func (h intMapper) Decode(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	err := ctx.Scan.PopValueInto("int", &value)
	if err != nil {
		return err
	}
	i, err := strconv.ParseInt(value, h.base, 64)
	if err != nil {
		return err
	}
	target.SetInt(i)
	return nil
}

type actionMapper struct{}

func (actionMapper) Decode(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	err := ctx.Scan.PopValueInto("action", &value)
	if err != nil {
		return err
	}
	a, err := shmap.ParseAction(value)
	if err != nil {
		return err
	}
	target.SetInt(int64(a))
	return nil
}
