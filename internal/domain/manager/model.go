package manager

// Transfer is one row of an entry's transfer log.
type Transfer struct {
	ElementIn      int    `json:"element_in"`
	ElementInCost  int    `json:"element_in_cost"`
	ElementOut     int    `json:"element_out"`
	ElementOutCost int    `json:"element_out_cost"`
	Entry          int64  `json:"entry"`
	Event          int    `json:"event"`
	Time           string `json:"time"`
}

// InEvent keeps transfers made in gameweek. gameweek <= 0 keeps everything.
func InEvent(items []Transfer, gameweek int) []Transfer {
	out := make([]Transfer, 0, len(items))
	for _, item := range items {
		if gameweek > 0 && item.Event != gameweek {
			continue
		}
		out = append(out, item)
	}
	return out
}
