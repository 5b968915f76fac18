// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"fmt"
	"strings"
)

// Operator identifies the kind of an expression node.
type Operator uint8

const (
	// OpConst is a literal leaf.
	OpConst Operator = iota
	// OpColumn is a column reference leaf.
	OpColumn

	OpPlus
	OpMinus
	OpMult
	OpDiv
	OpIntDiv
	OpMod
	OpNeg
	OpAbs

	OpRound
	OpTruncate
	OpCeiling
	OpFloor
	OpSign

	OpLn
	OpLog
	OpLog2
	OpLog10
	OpExp
	OpSqrt
	OpPow
	OpAcos
	OpAsin
	OpAtan
	OpCos
	OpSin
	OpTan
	OpCot
	OpDegrees
	OpRadians

	// NumOperators is the number of operators.
	NumOperators
)

type operatorInfo struct {
	// name is the function-style spelling of the operator.
	name string
	// symbol is the infix spelling, if any.
	symbol string
}

var operatorInfos = [NumOperators]operatorInfo{
	OpConst:    {name: "const"},
	OpColumn:   {name: "column"},
	OpPlus:     {name: "plus", symbol: "+"},
	OpMinus:    {name: "minus", symbol: "-"},
	OpMult:     {name: "mul", symbol: "*"},
	OpDiv:      {name: "div", symbol: "/"},
	OpIntDiv:   {name: "intdiv", symbol: "DIV"},
	OpMod:      {name: "mod", symbol: "%"},
	OpNeg:      {name: "neg", symbol: "-"},
	OpAbs:      {name: "abs"},
	OpRound:    {name: "round"},
	OpTruncate: {name: "truncate"},
	OpCeiling:  {name: "ceiling"},
	OpFloor:    {name: "floor"},
	OpSign:     {name: "sign"},
	OpLn:       {name: "ln"},
	OpLog:      {name: "log"},
	OpLog2:     {name: "log2"},
	OpLog10:    {name: "log10"},
	OpExp:      {name: "exp"},
	OpSqrt:     {name: "sqrt"},
	OpPow:      {name: "pow"},
	OpAcos:     {name: "acos"},
	OpAsin:     {name: "asin"},
	OpAtan:     {name: "atan"},
	OpCos:      {name: "cos"},
	OpSin:      {name: "sin"},
	OpTan:      {name: "tan"},
	OpCot:      {name: "cot"},
	OpDegrees:  {name: "degrees"},
	OpRadians:  {name: "radians"},
}

var operatorAliases = map[string]Operator{
	"ceil":  OpCeiling,
	"power": OpPow,
	"mult":  OpMult,
	"atan2": OpAtan,
}

var operatorsByName = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorInfos)+len(operatorAliases))
	for op := OpPlus; op < NumOperators; op++ {
		m[operatorInfos[op].name] = op
	}
	for name, op := range operatorAliases {
		m[name] = op
	}
	return m
}()

// String implements fmt.Stringer.
func (o Operator) String() string {
	if o < NumOperators {
		return operatorInfos[o].name
	}
	return fmt.Sprintf("operator(%d)", uint8(o))
}

// Symbol returns the infix spelling of o, or "" if o is printed as a
// function call.
func (o Operator) Symbol() string {
	if o < NumOperators {
		return operatorInfos[o].symbol
	}
	return ""
}

// IsLeaf returns whether o never has children.
func (o Operator) IsLeaf() bool {
	return o == OpConst || o == OpColumn
}

// OperatorByName looks up a non-leaf operator by its function-style name.
// The lookup is case insensitive.
func OperatorByName(name string) (Operator, bool) {
	op, ok := operatorsByName[strings.ToLower(name)]
	return op, ok
}
