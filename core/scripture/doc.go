// Package scripture resolves terse scripture citations such as "요3:16",
// "John 3:16-18" or "Röm8" into structured references.
//
// # Components
//
//   - Registry: immutable per-language tables mapping every abbreviation and
//     spelling of a book to one CanonicalBook, plus the book's fixed ordinal.
//   - Grammar: a participle grammar for "<letters> <chapter>[:<verse>[-<verse>]]".
//   - VerseRange: the inclusive verse interval of a citation, or the whole chapter.
//
// A Registry is built once with NewRegistry and is safe for concurrent use;
// nothing in this package performs I/O.
//
// # Matching rules
//
// Korean tokens are matched verbatim after NFC normalization. Latin-script
// tokens (English, German) are case folded, so "John", "john" and "JOHN"
// resolve identically. Tokens may carry a numeric book prefix ("1Cor",
// "1 John", "2Mo") which is joined to the letters before lookup.
package scripture
