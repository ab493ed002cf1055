package ws

import "github.com/derslik/derslik/pkg/logger"

// Option applies a configuration option to the Gateway.
type Option func(*Gateway)

// WithDecoder sets the token decoder. Required.
func WithDecoder(d TokenDecoder) Option {
	return func(g *Gateway) {
		if d != nil {
			g.decoder = d
		}
	}
}

// WithProcessor sets the decision processor. Required.
func WithProcessor(p Processor) Option {
	return func(g *Gateway) {
		if p != nil {
			g.pipe = p
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}
