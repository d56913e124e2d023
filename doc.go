// Package markup is the runtime targeted by code generated from .gsx templates.
//
// Generated template functions return a [Content] that writes itself into a
// [Formatter]. The formatter appends directly to a caller-owned byte buffer:
// static markup is written as-is, dynamic values pass through the escaping
// rules for their context (text or attribute value).
//
// Users mostly interact with three things:
//   - [Render] / [RenderString] / [Fprint] to turn content into bytes
//   - [Content] and [AttributeValue] to make their own types renderable
//   - builtins such as [For], [RawText] and [Sanitized]
package markup
