package aggregations

import "go.uber.org/zap"

// Context carries the ambient state shared by every aggregator in one
// tree for the duration of a collection pass.
type Context struct {
	logger *zap.Logger
}

func NewContext(logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{logger: logger}
}

func (c *Context) Logger() *zap.Logger {
	return c.logger
}
