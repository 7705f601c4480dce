// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/luxfi/deployer/pkg/plan"
	"github.com/luxfi/deployer/pkg/records"
	"github.com/olekukonko/tablewriter"
)

// DefaultTable creates a table writing to w with the given headers
func DefaultTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	anyHeaders := make([]any, len(headers))
	for i, h := range headers {
		anyHeaders[i] = h
	}
	table.Header(anyHeaders...)
	return table
}

// PrintOrderTable prints the steps of a plan in execution order.
func PrintOrderTable(w io.Writer, order []*plan.Step) error {
	table := DefaultTable(w, "#", "Step", "Contract", "Depends On", "Calls")
	for i, s := range order {
		deps := s.Dependencies()
		depStr := "-"
		if len(deps) > 0 {
			depStr = strings.Join(deps, ", ")
		}
		methods := make([]string, 0, len(s.Calls))
		for _, c := range s.Calls {
			m := c.Method
			if c.Target != "" && c.Target != s.ID {
				m = c.Target + "." + m
			}
			methods = append(methods, m)
		}
		callStr := "-"
		if len(methods) > 0 {
			callStr = strings.Join(methods, ", ")
		}
		if err := table.Append([]string{strconv.Itoa(i + 1), s.ID, s.Contract, depStr, callStr}); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintRecordsTable prints the records of ids in that order, followed by
// records of steps not listed in ids sorted by step id.
func PrintRecordsTable(w io.Writer, ids []string, rs records.Records) error {
	table := DefaultTable(w, "Step", "Contract", "Status", "Address", "Tx", "Calls", "Error")

	seen := make(map[string]bool, len(ids))
	rows := make([]*records.ExecutionRecord, 0, len(rs))
	for _, id := range ids {
		seen[id] = true
		if r, ok := rs[id]; ok {
			rows = append(rows, r)
		}
	}
	var extra []*records.ExecutionRecord
	for id, r := range rs {
		if !seen[id] {
			extra = append(extra, r)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].StepID < extra[j].StepID })
	rows = append(rows, extra...)

	for _, r := range rows {
		if err := table.Append([]string{
			r.StepID,
			r.Contract,
			string(r.Status),
			orDash(r.Address),
			orDash(r.TxID),
			strconv.Itoa(len(r.Calls)),
			orDash(r.Error),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
