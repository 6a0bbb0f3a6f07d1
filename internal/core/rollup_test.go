package core

import (
	"reflect"
	"testing"
)

func TestSummarizeClientsDeduplicates(t *testing.T) {
	invoices := []Invoice{
		{ClientName: "Acme", ClientEmail: "contact@acme.tn"},
		{ClientName: "Zed Industries", ClientEmail: "zed@mail.tn"},
		{ClientName: "Acme SARL", ClientEmail: "contact@acme.tn"}, // same key, diverging name
	}

	got := SummarizeClients(invoices)
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	// First-seen order, first occurrence seeds the display fields.
	if got[0].Name != "Acme" || got[0].Email != "contact@acme.tn" || got[0].Invoices != 2 {
		t.Fatalf("unexpected first summary: %+v", got[0])
	}
	if got[1].Name != "Zed Industries" || got[1].Invoices != 1 {
		t.Fatalf("unexpected second summary: %+v", got[1])
	}
}

func TestSummarizeClientsKeyFallbacks(t *testing.T) {
	invoices := []Invoice{
		{ClientName: "NoMail"},       // keyed by name
		{},                           // sentinel key
		{},                           // same sentinel key
		{ClientEmail: "a@b.tn"},      // keyed by email, no display name
		{ClientName: "NoMail"},       // increments name-keyed entry
	}

	got := SummarizeClients(invoices)
	if len(got) != 3 {
		t.Fatalf("got %d summaries, want 3", len(got))
	}
	if got[0].Name != "NoMail" || got[0].Email != "-" || got[0].Invoices != 2 {
		t.Fatalf("unexpected name-keyed summary: %+v", got[0])
	}
	if got[1].Name != "Client" || got[1].Email != "-" || got[1].Invoices != 2 {
		t.Fatalf("unexpected sentinel summary: %+v", got[1])
	}
	if got[2].Name != "Client" || got[2].Email != "a@b.tn" || got[2].Invoices != 1 {
		t.Fatalf("unexpected email-keyed summary: %+v", got[2])
	}
}

func TestSummarizeClientsBounds(t *testing.T) {
	invoices := []Invoice{
		{ClientEmail: "a@b.tn"}, {ClientEmail: "c@d.tn"}, {ClientEmail: "a@b.tn"},
	}
	got := SummarizeClients(invoices)
	if len(got) > len(invoices) {
		t.Fatalf("output longer than input: %d > %d", len(got), len(invoices))
	}
	seen := map[string]bool{}
	for _, s := range got {
		if seen[s.Email] {
			t.Fatalf("duplicate key in output: %s", s.Email)
		}
		seen[s.Email] = true
	}
}

func TestSummarizeClientsIdempotent(t *testing.T) {
	invoices := []Invoice{
		{ClientEmail: "a@b.tn", ClientName: "A"},
		{ClientName: "B"},
		{},
	}
	first := SummarizeClients(invoices)
	second := SummarizeClients(invoices)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("summarize not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}
