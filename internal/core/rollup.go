package core

// ClientSummary is a derived roll-up row for one distinct client key.
type ClientSummary struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Invoices int    `json:"invoices"`
}

// SummarizeClients builds the deduplicated client directory for an invoice
// set. Output order is the first-seen order of distinct keys. The first
// invoice for a key seeds name and email (with display fallbacks); later
// invoices only increment the count, even if their name or email disagree.
func SummarizeClients(invoices []Invoice) []ClientSummary {
	index := make(map[string]int, len(invoices))
	out := make([]ClientSummary, 0, len(invoices))
	for _, inv := range invoices {
		key := ClientKey(inv)
		if i, seen := index[key]; seen {
			out[i].Invoices++
			continue
		}
		name := inv.ClientName
		if name == "" {
			name = "Client"
		}
		email := inv.ClientEmail
		if email == "" {
			email = "-"
		}
		index[key] = len(out)
		out = append(out, ClientSummary{Name: name, Email: email, Invoices: 1})
	}
	return out
}
