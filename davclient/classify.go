package davclient

// classify applies the status table to resp, logs the verdict and counts it.
func (c *Client) classify(op Operation, path string, resp *Response) Outcome {
	out := c.status.Classify(op, resp.StatusCode, resp.Body)

	switch out.Kind {
	case Success:
		c.logger.Debug("operation succeeded", "method", op.Method(), "path", path, "status", out.StatusCode)
	case BenignConflict:
		c.logger.Warn(out.Reason, "method", op.Method(), "path", path, "status", out.StatusCode)
	case HardFailure:
		c.logger.Error("operation failed",
			"method", op.Method(),
			"path", path,
			"status", out.StatusCode,
			"reason", out.Reason,
			"body", out.Body)
	}

	c.metrics.observe(op, out.Kind.String())
	return out
}

// fail reports an operation that never got a usable reply.
func (c *Client) fail(op Operation, err error) (Outcome, error) {
	c.metrics.observe(op, "error")
	return Outcome{Operation: op, Kind: HardFailure}, err
}
