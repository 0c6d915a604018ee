package cgen

import (
	"slices"
	"strconv"

	"github.com/smolos/drvgen/internal/codegen/common"
	"github.com/smolos/drvgen/internal/codegen/marker"
)

// SourceMarkers returns the marker handlers of the .c template.
func SourceMarkers() Registry {
	r := sharedMarkers()
	r[marker.Include] = Handler{Block: func(req *Request) ([]string, error) {
		includes := slices.Clone(req.Config.IncludesC)
		for _, inc := range req.Analysis.Includes {
			if !slices.Contains(includes, inc) {
				includes = append(includes, inc)
			}
		}
		return common.Includes(includes), nil
	}}
	r[marker.Constants] = Handler{Block: func(req *Request) ([]string, error) {
		table, err := BuildTable(req.Config, req.Analysis)
		if err != nil {
			return nil, err
		}
		return append(BufferDecls(req.Analysis), table...), nil
	}}
	r[marker.Define] = Handler{Block: func(req *Request) ([]string, error) {
		out := defines(req)
		for _, sym := range req.Analysis.BufferSizes.Symbols() {
			v, _ := req.Analysis.BufferSizes.Lookup(sym)
			out = append(out, common.Define(sym, v))
		}
		return out, nil
	}}
	r[marker.Functions] = Handler{Block: func(req *Request) ([]string, error) {
		initFunc, err := ExpandInit(req.Config, req.Analysis)
		if err != nil {
			return nil, err
		}
		irq, err := IRQHandlers(req.Config)
		if err != nil {
			return nil, err
		}
		return append(initFunc, irq...), nil
	}}
	return r
}

// HeaderMarkers returns the marker handlers of the .h template.
func HeaderMarkers() Registry {
	r := sharedMarkers()
	r[marker.Include] = Handler{Block: func(req *Request) ([]string, error) {
		return common.Includes(req.Config.IncludesH), nil
	}}
	r[marker.Constants] = Handler{Block: func(req *Request) ([]string, error) {
		return ExternDecls(req.Analysis), nil
	}}
	r[marker.Define] = Handler{Block: func(req *Request) ([]string, error) {
		return defines(req), nil
	}}
	r[marker.Functions] = Handler{Block: func(req *Request) ([]string, error) {
		return []string{InitPrototype()}, nil
	}}
	return r
}

// sharedMarkers holds the markers rendered identically in both files.
func sharedMarkers() Registry {
	return Registry{
		marker.Filename: {Inline: func(req *Request) (string, error) {
			return req.FileName(), nil
		}},
		marker.Date: {Inline: func(req *Request) (string, error) {
			return req.Ctx.Date(), nil
		}},
		marker.Author: {Inline: func(req *Request) (string, error) {
			return req.Ctx.Author, nil
		}},
		marker.Ifndef: {Block: func(req *Request) ([]string, error) {
			guard := common.GuardName(req.Config.TargetC.Name, req.Flavor.Ext())
			return []string{"#ifndef " + guard, "#define " + guard}, nil
		}},
	}
}

// defines emits the table size and the activation macros.
func defines(req *Request) []string {
	out := []string{common.Define(DriverAllocSize, strconv.Itoa(len(req.Config.Drivers)))}
	for _, act := range req.Analysis.Activations {
		out = append(out, common.Define(act, ""))
	}
	return out
}
