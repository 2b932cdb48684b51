package component

// Option configures component metadata at creation time.
type Option[T Component] func(c *metadata[T])

// WithDefault sets the default value of the component. Metadata.New will
// return the marshaled bytes of this value instead of the zero value.
func WithDefault[T Component](defaultVal T) Option[T] {
	return func(c *metadata[T]) {
		c.defaultVal = defaultVal
		c.validateDefaultVal()
	}
}
