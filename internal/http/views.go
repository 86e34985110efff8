package http

import (
	"strings"

	"reviewdesk/internal/core"
	"reviewdesk/internal/store"
)

type expenseView struct {
	ID           string
	EmployeeName string
	Category     string
	Description  string
	Amount       string
	Date         string
	ISODate      string
	Status       string
	StatusLabel  string
	Comment      string
	Pending      bool
}

type summaryView struct {
	PendingCount  int
	PendingTotal  string
	ApprovedCount int
	ApprovedTotal string
	RejectedCount int
	AllCount      int
	AllTotal      string
}

type tabView struct {
	Status string
	Label  string
	Count  int
	Active bool
}

type tabsView struct {
	Active string
	Tabs   []tabView
	Items  []expenseView
	Empty  string
}

type pageView struct {
	Summary summaryView
	Tabs    tabsView
}

type rejectDialogView struct {
	ID           string
	EmployeeName string
	Amount       string
	Tab          string
}

func newExpenseView(e core.Expense) expenseView {
	return expenseView{
		ID:           e.ID,
		EmployeeName: e.EmployeeName,
		Category:     e.Category,
		Description:  e.Description,
		Amount:       e.Amount.String(),
		Date:         formatDate(e.Date),
		ISODate:      e.Date.ISO(),
		Status:       string(e.Status),
		StatusLabel:  e.Status.Label(),
		Comment:      e.ApproverComment,
		Pending:      e.IsPending(),
	}
}

func newSummaryView(s core.Summary) summaryView {
	return summaryView{
		PendingCount:  s.PendingCount,
		PendingTotal:  s.PendingTotal.String(),
		ApprovedCount: s.ApprovedCount,
		ApprovedTotal: s.ApprovedTotal.String(),
		RejectedCount: s.RejectedCount,
		AllCount:      s.AllCount,
		AllTotal:      s.AllTotal.String(),
	}
}

func newTabsView(v store.View, active core.Status) tabsView {
	tv := tabsView{Active: string(active)}
	for _, st := range core.Statuses() {
		tv.Tabs = append(tv.Tabs, tabView{
			Status: string(st),
			Label:  st.Label(),
			Count:  v.Summary.Count(st),
			Active: st == active,
		})
	}
	for _, e := range v.Partitions.ByStatus(active) {
		tv.Items = append(tv.Items, newExpenseView(e))
	}
	if len(tv.Items) == 0 {
		tv.Empty = "No " + strings.ToLower(string(active)) + " expenses"
	}
	return tv
}

func newPageView(v store.View, active core.Status) pageView {
	return pageView{
		Summary: newSummaryView(v.Summary),
		Tabs:    newTabsView(v, active),
	}
}
