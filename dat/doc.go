// Package dat implements the Samizdat Layer 0 value model: the uniform
// value header, every primitive and persistent-container class, and
// the class registry that backs generic dispatch.
//
// Every concrete type here (Int, String, Symbol, Uniqlet, List, Map,
// SymbolTable, Record, Box, Function, Class) embeds Header and
// implements Value. Construction of a heap-tracked value goes through
// an Allocator (implemented by package heap) so that every allocation
// is rooted on the frame stack before the constructor returns, per the
// value model's lifecycle contract.
package dat
