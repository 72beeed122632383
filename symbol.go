package huffman

// Symbol represents one byte value in the code's alphabet.
type Symbol uint8

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(255)

// NumSymbols is the size of the alphabet.
const NumSymbols = int(MaxSymbol) + 1
