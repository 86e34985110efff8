package core

// Partitions splits a collection by status, keeping source order.
type Partitions struct {
	Pending  Expenses
	Approved Expenses
	Rejected Expenses
}

// Summary holds the figures shown on the summary tiles. Rejected amounts
// are not money at risk, so AllTotal covers pending and approved only.
type Summary struct {
	PendingCount  int
	PendingTotal  Money
	ApprovedCount int
	ApprovedTotal Money
	RejectedCount int
	AllCount      int
	AllTotal      Money
}

// Partition is a stable filter of expenses into the three statuses.
func Partition(expenses Expenses) Partitions {
	var p Partitions
	for _, e := range expenses {
		switch e.Status {
		case StatusPending:
			p.Pending = append(p.Pending, e)
		case StatusApproved:
			p.Approved = append(p.Approved, e)
		case StatusRejected:
			p.Rejected = append(p.Rejected, e)
		}
	}
	return p
}

// ByStatus returns the partition for s.
func (p Partitions) ByStatus(s Status) Expenses {
	switch s {
	case StatusApproved:
		return p.Approved
	case StatusRejected:
		return p.Rejected
	default:
		return p.Pending
	}
}

// Aggregate computes counts and totals over expenses.
func Aggregate(expenses Expenses) Summary {
	var s Summary
	for _, e := range expenses {
		switch e.Status {
		case StatusPending:
			s.PendingCount++
			s.PendingTotal = s.PendingTotal.Add(e.Amount)
		case StatusApproved:
			s.ApprovedCount++
			s.ApprovedTotal = s.ApprovedTotal.Add(e.Amount)
		case StatusRejected:
			s.RejectedCount++
		}
	}
	s.AllCount = len(expenses)
	s.AllTotal = s.PendingTotal.Add(s.ApprovedTotal)
	return s
}

// Count returns the partition size for s.
func (s Summary) Count(st Status) int {
	switch st {
	case StatusApproved:
		return s.ApprovedCount
	case StatusRejected:
		return s.RejectedCount
	default:
		return s.PendingCount
	}
}
