// Package types defines Vela's type tags and the symbol table used by
// semantic analysis.
package types

import (
	"fmt"

	"github.com/vela-lang/vela/internal/syntax"
)

// Type is a Vela type tag.
type Type uint8

const (
	Unknown Type = iota // undetermined or erroneous type
	Int
	Float
	Bool
	String
	Char
	Void // return-type position only
)

var typeNames = [...]string{
	Unknown: "unknown",
	Int:     "int",
	Float:   "float",
	Bool:    "bool",
	String:  "string",
	Char:    "char",
	Void:    "void",
}

// String returns the type's source-level name.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", t)
}

// IsNumeric reports whether t is int or float.
func (t Type) IsNumeric() bool {
	return t == Int || t == Float
}

// FromKeyword maps a type-keyword token kind to its type tag.
// auto maps to Unknown: its type comes from inference.
func FromKeyword(k syntax.TokenKind) Type {
	switch k {
	case syntax.TypeInt:
		return Int
	case syntax.TypeFloat:
		return Float
	case syntax.TypeString:
		return String
	case syntax.TypeChar:
		return Char
	case syntax.TypeBool:
		return Bool
	case syntax.TypeVoid:
		return Void
	}
	return Unknown
}

// FromLitKind maps a literal kind to its type tag.
func FromLitKind(k syntax.LitKind) Type {
	switch k {
	case syntax.LitInt:
		return Int
	case syntax.LitFloat:
		return Float
	case syntax.LitString:
		return String
	case syntax.LitChar:
		return Char
	case syntax.LitBool:
		return Bool
	}
	return Unknown
}
