package models

// Outcome is the tagged result of one generation-client invocation.
// The recovery pipeline branches on the tag instead of on panics or
// sentinel strings.
type Outcome struct {
	Text string
	Err  error
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

func Success(text string) Outcome {
	return Outcome{Text: text}
}

func Failure(err error) Outcome {
	return Outcome{Err: err}
}
