// Package construct builds document trees from tokenizer event streams.
//
// A Constructor is an event.Handler holding an explicit stack of open nodes
// and a skip depth. Supported blocks and spans are pushed on enter and
// appended to their parent on leave, using the wrapping rules of package
// coerce. Constructs the tree model has no kind for (tables, strikethrough,
// math, wiki links, underline) are skipped: their enter increments the skip
// depth, every event until the matching leave is discarded, and the leave
// decrements it again.
//
// Skip tracking counts depth and does not match kinds, so a stream which
// pairs the enter of one unsupported construct with the leave of another is
// accepted as long as the nesting depth balances.
//
// Tokenizers commonly deliver the text of tight list items without
// paragraph events. Inline content arriving directly under an item is placed
// in an implicit paragraph: a new one when the item is empty or its last
// child is not a paragraph, otherwise the last child. Two paragraphs' worth
// of inline content delivered under one item with no block event between
// them therefore end up in a single paragraph.
//
// Each Constructor owns its state, so independent parses may run
// concurrently. A Constructor is not itself safe for concurrent use.
package construct
