package ui

import (
	"github.com/altinukshini/schedviz/internal/export"
	"github.com/altinukshini/schedviz/internal/model"
)

type AlgorithmsLoadedMsg struct {
	Algorithms []model.Algorithm
	Err        error
}

// ScheduleDoneMsg carries the solver's raw response body.
type ScheduleDoneMsg struct {
	Scheduler string
	Raw       []byte
	Err       error
}

type ExportDoneMsg struct {
	Entry export.Entry
	// Charts lists the chart images written next to the JSON.
	Charts []string
	Err    error
}

type ExportsLoadedMsg struct {
	Entries   []export.Entry
	TotalSize int64
	Err       error
}

type ExportDeletedMsg struct {
	Count int
	Err   error
}

// PayloadLoadedMsg carries a saved export file for viewing.
type PayloadLoadedMsg struct {
	Title   string
	Content string
	Err     error
}

type StatusMsg struct {
	Text string
}
