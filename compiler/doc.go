/*
Package compiler translates miniplc0 programs into stack machine code.

Process of compilation

Program Text ->
	lex ->
Tokens ->
	analyze ->
Instructions ->
	format ->
Listing Text

Instructions ->
	vm ->
Printed Values

There is no syntax tree: the analyzer emits instructions
as soon as it recognizes each construct.
*/
package compiler
