// Package ttl parses the Turtle dialect the Modes of Demise catalogue is
// written in.
//
// This is not a general RDF parser. The catalogue is a sequence of blocks
// separated by blank lines, one concept per block:
//
//	:poisoning a skos:Concept ;
//	    skos:prefLabel "Poisoning" ;
//	    skos:definition "Death caused by ingesting a toxic substance." ;
//	    skos:example "Hercules and the shirt of Nessus." ;
//	    skos:broader :physicalViolence .
//
// Parsing happens in two explicit steps. [Lex] turns a block into tokens
// (names, prefixed names, quoted strings, punctuation), dropping comments.
// The parser then reads each block as
//
//	block   := directive* subject predicateObjectList '.'?
//	pol     := verb objectList (';' verb objectList)*
//	objects := object (',' object)*
//
// # Recovery policy
//
// Nothing in a catalogue is fatal by default:
//   - a block whose first significant token is not a ":id" (prefix
//     declarations, stray text) is skipped and listed in [Result.Skipped];
//   - a statement with an unexpected token is stepped over up to the next
//     ';' or '.', and a [Warning] is recorded;
//   - missing fields stay empty;
//   - for prefLabel, definition, example and scopeNote the first value in a
//     block wins; broader and narrower collect every reference in order;
//   - when two blocks declare the same id, the later block replaces the
//     earlier one and the pair is listed in [Result.Duplicates]. With
//     [Options.Strict] this becomes [ErrDuplicateConcept] instead.
//
// References to concepts that are never declared are kept as written; the
// taxonomy package drops them when it derives edges.
package ttl
