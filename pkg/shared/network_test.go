package shared

import (
	"testing"
)

func TestNormalizeNetwork(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"mainnet", NetworkMainnet},
		{"MAINNET", NetworkMainnet},
		{"  testnet  ", NetworkTestnet},
		{"Testnet", NetworkTestnet},
		{"previewnet", NetworkPreviewnet},
		{"", NetworkTestnet},
		{"   ", NetworkTestnet},
	}

	for _, tc := range cases {
		result, err := NormalizeNetwork(tc.input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.input, err)
		}
		if result != tc.expected {
			t.Fatalf("expected %q for input %q, got %q", tc.expected, tc.input, result)
		}
	}
}

func TestNormalizeNetworkUnsupported(t *testing.T) {
	_, err := NormalizeNetwork("devnet")
	if err == nil {
		t.Fatal("expected error for unsupported network")
	}
}

func TestNewHederaClient(t *testing.T) {
	for _, network := range []string{"mainnet", "testnet", "previewnet", ""} {
		client, err := NewHederaClient(network)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", network, err)
		}
		if client == nil {
			t.Fatalf("expected non-nil client for %q", network)
		}
		if len(client.GetNetwork()) == 0 {
			t.Fatalf("expected %q client to know consensus nodes", network)
		}
		client.Close()
	}
}

func TestNewHederaClientUnsupported(t *testing.T) {
	_, err := NewHederaClient("badnet")
	if err == nil {
		t.Fatal("expected error for unsupported network")
	}
}

func TestDefaultMirrorBaseURL(t *testing.T) {
	url, err := DefaultMirrorBaseURL("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://testnet.mirrornode.hedera.com" {
		t.Fatalf("unexpected testnet mirror URL: %s", url)
	}

	url, err = DefaultMirrorBaseURL("mainnet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://mainnet-public.mirrornode.hedera.com" {
		t.Fatalf("unexpected mainnet mirror URL: %s", url)
	}

	if _, err := DefaultMirrorBaseURL("nope"); err == nil {
		t.Fatal("expected error for unsupported network")
	}
}
