package lexer

import (
	"reflect"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"select 2 from table", []string{"select", "2", "from", "table"}},
		{"select 2, 3,", []string{"select", "2", ",", "3", ","}},
		{`select "ahoj"`, []string{"select", `"ahoj"`}},
		{`insert "hello", 2 into my_table`, []string{"insert", `"hello"`, ",", "2", "into", "my_table"}},
	}

	for _, tt := range tests {
		got, err := Tokenize(tt.input)
		if err != nil {
			t.Fatalf("Tokenize(%q) returned error: %v", tt.input, err)
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Tokenize(%q) = %#v, want %#v", tt.input, got, tt.expected)
		}
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	if _, err := Tokenize(`insert "`); err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestTokenizeDelete(t *testing.T) {
	got, err := Tokenize("delete from my_table where x = 40.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"delete", "from", "my_table", "where", "x", "=", "40.0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestTokenizePlusMinus(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"select x - a from my_table", []string{"select", "x", "-", "a", "from", "my_table"}},
		{"where x+4", []string{"where", "x", "+", "4"}},
		{"where x=-4", []string{"where", "x", "=", "-", "4"}},
		{"where x-4=5", []string{"where", "x", "-", "4", "=", "5"}},
	}

	for _, tt := range tests {
		got, err := Tokenize(tt.input)
		if err != nil {
			t.Fatalf("Tokenize(%q) returned error: %v", tt.input, err)
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Tokenize(%q) = %#v, want %#v", tt.input, got, tt.expected)
		}
	}
}

func TestTokenizeTwoCharOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"a >= b and c <= d", []string{"a", ">=", "b", "and", "c", "<=", "d"}},
		{"a <> b or a != c", []string{"a", "<>", "b", "or", "a", "!=", "c"}},
	}

	for _, tt := range tests {
		got, err := Tokenize(tt.input)
		if err != nil {
			t.Fatalf("Tokenize(%q) returned error: %v", tt.input, err)
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Tokenize(%q) = %#v, want %#v", tt.input, got, tt.expected)
		}
	}
}

func TestTokenizeMultipleSpaces(t *testing.T) {
	got, err := Tokenize("select    ahoj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"select", "ahoj"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}
