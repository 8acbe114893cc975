// Package balances holds the arithmetic of expense sharing: checking that a
// proposed set of splits adds up, expanding it into per-user amounts, folding
// stored expenses and splits into balances, and shaping those balances for
// the API, the PDF balance sheet and reminder emails.
//
// Everything here is a pure function of its arguments. Callers load the
// users, expenses and splits tables and pass them in whole; nothing is cached
// between calls.
package balances
