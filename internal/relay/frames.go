// Package relay bridges a browser WebSocket to an upstream realtime voice
// endpoint. The relay configures the upstream session once, then forwards
// frames verbatim in both directions until either leg closes.
package relay

// Frame type for relay-originated error frames. All other frames pass
// through untouched and are never inspected.
const errorFrameType = "error"

// Error codes attached to relay-originated error frames.
const (
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeUpstreamError       = "upstream_error"
)

// ErrorFrame is the only frame the relay itself originates toward the
// client. Everything else on the wire belongs to the two endpoints.
type ErrorFrame struct {
	Type  string      `json:"type"`
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorFrame builds a relay error frame.
func NewErrorFrame(code, message string) ErrorFrame {
	return ErrorFrame{
		Type:  errorFrameType,
		Error: ErrorDetail{Code: code, Message: message},
	}
}

// SessionUpdate is the configuration frame sent to the upstream endpoint
// exactly once, before any client frames are forwarded.
type SessionUpdate struct {
	Type    string  `json:"type"`
	Session Session `json:"session"`
}

// Session describes the negotiated voice session.
type Session struct {
	Modalities        []string      `json:"modalities"`
	Instructions      string        `json:"instructions"`
	Voice             string        `json:"voice"`
	InputAudioFormat  string        `json:"input_audio_format"`
	OutputAudioFormat string        `json:"output_audio_format"`
	TurnDetection     TurnDetection `json:"turn_detection"`
}

// TurnDetection configures upstream server-side voice activity detection.
type TurnDetection struct {
	Type              string  `json:"type"`
	Threshold         float64 `json:"threshold"`
	PrefixPaddingMs   int     `json:"prefix_padding_ms"`
	SilenceDurationMs int     `json:"silence_duration_ms"`
	CreateResponse    bool    `json:"create_response"`
}

// NewSession builds the standard session configuration: audio plus text,
// PCM16 in both directions, and server-side VAD tuned for conversational
// turn taking.
func NewSession(instructions, voice string) Session {
	return Session{
		Modalities:        []string{"audio", "text"},
		Instructions:      instructions,
		Voice:             voice,
		InputAudioFormat:  "pcm16",
		OutputAudioFormat: "pcm16",
		TurnDetection: TurnDetection{
			Type:              "server_vad",
			Threshold:         0.5,
			PrefixPaddingMs:   300,
			SilenceDurationMs: 500,
			CreateResponse:    true,
		},
	}
}
