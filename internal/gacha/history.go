package gacha

import "github.com/samber/lo"

// DefaultPerPage is the history page size when a query leaves it unset.
const DefaultPerPage = 10

// HistoryQuery filters and pages the pull history of one banner.
//
// Show6 and Show5 select rarities; when both are false every rarity is
// shown, otherwise only the selected tiers are. Page is 1-based and clamped
// to the available range.
type HistoryQuery struct {
	Banner  BannerKind
	Show6   bool
	Show5   bool
	Page    int
	PerPage int
}

// HistoryRow is one record with its pull number on the banner, oldest = 1.
type HistoryRow struct {
	Number int
	Record PullRecord
}

// HistoryPage is one page of a HistoryQuery.
type HistoryPage struct {
	Rows       []HistoryRow
	Page       int
	TotalPages int
	Total      int // rows matching the filter
}

// QueryHistory evaluates q over a most-recent-first history.
func QueryHistory(history []PullRecord, q HistoryQuery) HistoryPage {
	mustKind(q.Banner)
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	bannerRows := lo.FilterMap(history, func(r PullRecord, _ int) (PullRecord, bool) {
		return r, r.Banner == q.Banner
	})
	rows := make([]HistoryRow, 0, len(bannerRows))
	for i, r := range bannerRows {
		if !q.shows(r.Rarity) {
			continue
		}
		rows = append(rows, HistoryRow{Number: len(bannerRows) - i, Record: r})
	}

	totalPages := (len(rows) + perPage - 1) / perPage
	page := q.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	end := min(start+perPage, len(rows))
	if start > end {
		start = end
	}
	return HistoryPage{
		Rows:       rows[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      len(rows),
	}
}

func (q HistoryQuery) shows(r Rarity) bool {
	if !q.Show6 && !q.Show5 {
		return true
	}
	switch r {
	case Rarity6:
		return q.Show6
	case Rarity5:
		return q.Show5
	}
	return false
}
