package google

import (
	"encoding/json"
	"fmt"
	"strings"

	"reviewdesk/internal/core"
	"reviewdesk/internal/seed"
)

// Header names, matched case-insensitively.
const (
	colID          = "ID"
	colEmployee    = "Employee"
	colCategory    = "Category"
	colAmount      = "Amount"
	colDate        = "Date"
	colStatus      = "Status"
	colDescription = "Description"
	colComment     = "Comment"
)

// parseRows converts a values matrix whose first row is the header into a
// validated collection. Blank rows are skipped.
func parseRows(values [][]interface{}) (core.Expenses, error) {
	if len(values) == 0 {
		return core.Expenses{}, nil
	}
	headers := toStrings(values[0])
	idx := map[string]int{}
	for _, name := range []string{colID, colEmployee, colCategory, colAmount, colDate, colStatus, colDescription, colComment} {
		idx[name] = indexOf(headers, name)
	}
	var missing []string
	for _, name := range []string{colID, colAmount, colDate} {
		if idx[name] == -1 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unexpected header: missing %s; got headers=%v", strings.Join(missing, ","), headers)
	}

	records := make([]seed.Record, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := toStrings(raw)
		if strings.Join(row, "") == "" {
			continue
		}
		records = append(records, seed.Record{
			ID:              safeGet(row, idx[colID]),
			EmployeeName:    safeGet(row, idx[colEmployee]),
			Category:        safeGet(row, idx[colCategory]),
			Amount:          json.Number(normalizeAmount(safeGet(row, idx[colAmount]))),
			Date:            safeGet(row, idx[colDate]),
			Status:          safeGet(row, idx[colStatus]),
			Description:     safeGet(row, idx[colDescription]),
			ApproverComment: safeGet(row, idx[colComment]),
		})
	}
	return seed.Convert(records)
}

// normalizeAmount turns displayed amounts such as "$1,250" or "$1,250.00"
// into plain decimals. "12,5" is read as a decimal comma.
func normalizeAmount(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	return core.NormalizeDecimal(s)
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return i
		}
	}
	return -1
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
