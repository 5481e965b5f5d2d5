package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, map[string]int{"port": 8080}); err != nil {
		t.Fatalf("PrintJSON: %v", err)
	}

	want := "{\n\t\"port\": 8080\n}\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestPrintJSONUnsupportedValue(t *testing.T) {
	var buf bytes.Buffer
	err := PrintJSON(&buf, map[string]interface{}{"ch": make(chan int)})
	if err == nil || !strings.Contains(err.Error(), "marshalling JSON") {
		t.Fatalf("got %v, want a marshalling error", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("wrote %q on error", buf.String())
	}
}
