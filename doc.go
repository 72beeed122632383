// Package huffman implements Huffman codes over the byte alphabet, along with
// a line-oriented text format for saving and restoring a code table and a
// bit-packed encoder/decoder driven by the code tree.
//
// A code tree is built once, either from symbol frequencies or by replaying a
// saved table, and is read-only afterwards.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
