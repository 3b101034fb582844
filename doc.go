// Parasols is a research toolkit for exact solution of NP-hard graph
// problems on simple undirected graphs: maximum clique (package clique),
// maximum biclique (package biclique), maximum labelled clique (package
// labelled), and subgraph isomorphism (package iso).
//
// The shared engine is a bit-encoded graph substrate (package bitset), a
// colour-ordered branch-and-bound search, and a work-stealing parallel
// driver (package parallel) that runs the maximum clique search as a
// shared-incumbent multi-threaded solver. The biclique, labelled-clique and
// subgraph-isomorphism searches run on a single goroutine only.
//
// This package (graph) holds only the plain input representation: a simple
// undirected graph with optional vertex names. Every solver builds its own
// bit-encoded substrate from a Graph and a chosen vertex order; this package
// never touches a bitset.
package graph
