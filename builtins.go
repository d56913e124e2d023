package markup

import "iter"

// For renders Children once per item, in order, with nothing in between.
//
//	<markup.For[string] items={names}>
//		{func(f *markup.Formatter, name string) error { return f.WriteContent(name) }}
//	</markup.For>
type For[T any] struct {
	Items    []T
	Children func(f *Formatter, item T) error
}

// Format implements Content. The first error returned by Children stops the
// iteration.
func (c For[T]) Format(f *Formatter) error {
	if c.Children == nil {
		return nil
	}
	for _, item := range c.Items {
		if err := c.Children(f, item); err != nil {
			return err
		}
	}
	return nil
}

// ForSeq is For over an iterator.
type ForSeq[T any] struct {
	Items    iter.Seq[T]
	Children func(f *Formatter, item T) error
}

// Format implements Content.
func (c ForSeq[T]) Format(f *Formatter) error {
	if c.Items == nil || c.Children == nil {
		return nil
	}
	for item := range c.Items {
		if err := c.Children(f, item); err != nil {
			return err
		}
	}
	return nil
}
