package entities

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"
)

func confirmedPayment(expiresAt *time.Time) *Payment {
	return &Payment{
		TransactionHash:       "0xabc",
		Status:                PaymentStatusConfirmed,
		Confirmations:         5,
		RequiredConfirmations: 3,
		DownloadToken:         null.StringFrom("tok"),
		DownloadExpiresAt:     expiresAt,
	}
}

func TestIsDownloadValid(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	t.Run("confirmed with future expiry", func(t *testing.T) {
		if !confirmedPayment(&future).IsDownloadValid() {
			t.Fatal("expected valid download")
		}
	})

	t.Run("confirmed without expiry", func(t *testing.T) {
		if !confirmedPayment(nil).IsDownloadValid() {
			t.Fatal("expected valid download when no expiry set")
		}
	})

	t.Run("expired token stays confirmed but invalid", func(t *testing.T) {
		p := confirmedPayment(&past)
		if p.IsDownloadValid() {
			t.Fatal("expected expired download to be invalid")
		}
		if p.Status != PaymentStatusConfirmed {
			t.Fatal("expiry must not demote the status")
		}
	})

	t.Run("pending record", func(t *testing.T) {
		p := confirmedPayment(&future)
		p.Status = PaymentStatusPending
		if p.IsDownloadValid() {
			t.Fatal("pending record must not grant access")
		}
	})

	t.Run("insufficient confirmations", func(t *testing.T) {
		p := confirmedPayment(&future)
		p.Confirmations = 2
		if p.IsDownloadValid() {
			t.Fatal("record below required confirmations must not grant access")
		}
	})
}

func TestNormalizeTransactionHash(t *testing.T) {
	cases := map[string]string{
		"0xABCdef":   "0xabcdef",
		"ABCdef":     "0xabcdef",
		"  0xabc  ":  "0xabc",
		"0Xdeadbeef": "0xdeadbeef",
	}
	for in, want := range cases {
		if got := NormalizeTransactionHash(in); got != want {
			t.Fatalf("NormalizeTransactionHash(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeAddress(t *testing.T) {
	if got := NormalizeAddress("0xAbCd"); got != "0xabcd" {
		t.Fatalf("hex address should be lowercased, got %q", got)
	}
	if got := NormalizeAddress("fiat_127.0.0.1"); got != "fiat_127.0.0.1" {
		t.Fatalf("synthetic address should pass through, got %q", got)
	}
}
