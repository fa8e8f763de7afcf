package entry

import "log/slog"

// Level classifies a Notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// User-facing messages.
const (
	MsgNoteCreated       = "Nota criada com sucesso!"
	MsgEmptyContent      = "A nota não pode ficar vazia."
	MsgSpeechUnsupported = "Infelizmente seu ambiente não suporta a API de gravação!"
	MsgRecordingFailed   = "A gravação foi interrompida."
	MsgSaveFailed        = "Não foi possível salvar a nota."
)

// Notice is a transient message for the user (a toast in a graphical host).
type Notice struct {
	Level   Level
	Message string
	Err     error
}

// Notifier presents notices to the user.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// LogNotifier writes notices to a logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(n Notice) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{"level", string(n.Level)}
	if n.Err != nil {
		attrs = append(attrs, "error", n.Err)
	}
	switch n.Level {
	case LevelError:
		logger.Error(n.Message, attrs...)
	case LevelWarning:
		logger.Warn(n.Message, attrs...)
	default:
		logger.Info(n.Message, attrs...)
	}
}
