// Package markupgen compiles .gsx files into Go code targeting the markup
// runtime.
//
// The pipeline consists of:
//   - [Lexer]: tokenizes the Go level of a .gsx file
//   - [Parser]: builds a [File] whose templ bodies are parsed into markup [Node] trees
//   - [Visitor]: lowers markup into a [Template] of ordered [Instruction] values,
//     accumulating diagnostics and IDE hints
//   - [Emitter]: writes formatter calls for a [Template]
//   - [LowerComponent]: turns a //markup:component function into a component type
//   - [Generator]: assembles and formats the final Go file
package markupgen
