package core

import (
	"fmt"
	"sort"
	"time"
)

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

type periodKey struct {
	year  int
	month time.Month
}

// GroupByPeriod partitions a transaction collection into calendar-month
// buckets keyed on the local year and month of occurredAt. Buckets come back
// newest month first, transactions inside each bucket newest first (insertion
// order breaks timestamp ties). Only observed months produce a period; the
// output is an exact partition of the input.
func GroupByPeriod(txs []Transaction) []Period {
	buckets := make(map[periodKey][]Transaction)
	keys := make([]periodKey, 0)

	for _, tx := range txs {
		local := tx.OccurredAt.Local()
		key := periodKey{year: local.Year(), month: local.Month()}
		if _, seen := buckets[key]; !seen {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], tx)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		return keys[i].month > keys[j].month
	})

	periods := make([]Period, 0, len(keys))
	for _, key := range keys {
		group := buckets[key]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].OccurredAt.After(group[j].OccurredAt)
		})
		periods = append(periods, Period{
			Year:         key.year,
			Month:        int(key.month),
			Label:        PeriodLabel(key.year, int(key.month)),
			Transactions: group,
		})
	}
	return periods
}

// PeriodLabel renders the capitalized Spanish month name plus the 4-digit
// year, e.g. "Enero 2025".
func PeriodLabel(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%04d-%02d", year, month)
	}
	return fmt.Sprintf("%s %d", monthNames[month-1], year)
}
