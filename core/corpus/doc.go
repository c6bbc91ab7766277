// Package corpus locates chapter and song units inside a content root and
// extracts verse text and strophes from them.
//
// # Storage layout
//
// The markdown corpus is a directory tree:
//
//	<bible root>/
//	    01_창세기/
//	        창 1.md
//	        창 2.md
//	    43_요한복음/
//	        요 3.md
//	<hymn root>/
//	    새찬송가_1.md
//	    새찬송가_2.md
//
// Chapter files mark each verse with a "###### N" heading. Song files use a
// "# " title heading and "## " section headings for strophes and refrain.
//
// Book directories and unit files are found by an ordered list of
// LocatorStrategy values ("first success wins"), since the exact layout of a
// corpus is not contractually fixed.
//
// # Backends
//
// Three backends implement ScriptureSource: MarkdownBible (the tree above),
// XMLBible (a Zefania XML file) and Index (a SQLite index built from a
// markdown corpus). MarkdownHymnal and Index implement HymnSource.
//
// All lookups are read-only and safe for concurrent use.
package corpus
