package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/internal/config"
	"github.com/aretw0/jot/internal/tui"
	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/entry"
	"github.com/aretw0/jot/pkg/speech"
)

var (
	newText   string
	newRecord bool
	newScript string
	newAudio  string
	newDelay  time.Duration
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Escreve uma nova nota",
	Long: `Escreve uma nova nota.

Sem flags, abre uma tela interativa para digitar ou ditar a nota.
--text salva o texto informado diretamente ("-" lê da entrada padrão).
--record dita sem a tela interativa, usando --script (um arquivo de texto
reproduzido como fala, um trecho por linha) ou --audio (uma gravação transcrita
pelo Gemini; requer GEMINI_API_KEY).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		store, cfg, err := openStore()
		if err != nil {
			fatal("Erro ao abrir o cofre", err)
		}
		defer store.Close()

		rec, err := buildRecognizer(ctx, cfg)
		if err != nil {
			fatal("Erro ao preparar o reconhecimento de voz", err)
		}

		if !cmd.Flags().Changed("text") && !newRecord {
			if err := runInteractive(ctx, store, rec, cfg.Language); err != nil {
				fatal("Erro na tela de composição", err)
			}
			return
		}

		text := newText
		if text == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Erro ao ler a entrada padrão", err)
			}
			text = string(data)
		}

		note, err := runHeadless(ctx, store, rec, headlessRequest{
			Language: cfg.Language,
			Text:     text,
			Record:   newRecord,
		}, os.Stderr)
		if err != nil {
			fatal("Erro ao criar a nota", err)
		}
		fmt.Printf("%s %s\n", entry.MsgNoteCreated, note.ID)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVar(&newText, "text", "", "Conteúdo da nota (\"-\" lê da entrada padrão)")
	newCmd.Flags().BoolVar(&newRecord, "record", false, "Dita a nota sem a tela interativa")
	newCmd.Flags().StringVar(&newScript, "script", "", "Reproduz este arquivo como fala, um trecho por linha (\"~ \" marca texto provisório)")
	newCmd.Flags().StringVar(&newAudio, "audio", "", "Transcreve este arquivo de áudio com o Gemini")
	newCmd.Flags().DurationVar(&newDelay, "delay", 300*time.Millisecond, "Pausa entre os trechos do roteiro")
	newCmd.MarkFlagsMutuallyExclusive("text", "record")
	newCmd.MarkFlagsMutuallyExclusive("script", "audio")
}

// buildRecognizer picks the speech engine from the flags. Without a source,
// dictation is reported as unavailable.
func buildRecognizer(ctx context.Context, cfg config.Config) (speech.Recognizer, error) {
	switch {
	case newScript != "":
		f, err := os.Open(newScript)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		segments, err := speech.ParseScript(f)
		if err != nil {
			return nil, err
		}
		return &speech.Scripted{Segments: segments, Delay: newDelay}, nil

	case newAudio != "":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			slog.Warn("GEMINI_API_KEY is not set, dictation disabled")
			return speech.Unavailable{}, nil
		}
		return speech.NewGemini(ctx, speech.GeminiConfig{
			APIKey:    key,
			Model:     cfg.Gemini.Model,
			AudioPath: newAudio,
		})
	}
	return speech.Unavailable{}, nil
}

func runInteractive(ctx context.Context, store *core.Store, rec speech.Recognizer, lang string) error {
	bridge := tui.NewBridge()
	ctrl := entry.New(nil,
		entry.WithSave(func(content string) error {
			_, err := store.Create(ctx, content)
			return err
		}),
		entry.WithRecognizer(rec),
		entry.WithLanguage(lang),
		entry.WithNotifier(bridge),
		entry.WithOnChange(bridge.OnChange),
	)
	defer ctrl.Close()

	return tui.Run(ctx, ctrl, bridge)
}

type headlessRequest struct {
	Language string
	Text     string
	Record   bool
}

// runHeadless drives the entry controller without a screen: either types req.Text
// or records until the engine finishes, then submits.
func runHeadless(ctx context.Context, store *core.Store, rec speech.Recognizer, req headlessRequest, errOut io.Writer) (core.Note, error) {
	var created core.Note
	tracker := &trackingRecognizer{Recognizer: rec, started: make(chan speech.Session, 1)}

	ctrl := entry.New(nil,
		entry.WithSave(func(content string) error {
			note, err := store.Create(ctx, content)
			if err != nil {
				return err
			}
			created = note
			return nil
		}),
		entry.WithRecognizer(tracker),
		entry.WithLanguage(req.Language),
		entry.WithLogger(slog.Default()),
		entry.WithNotifier(entry.NotifierFunc(func(n entry.Notice) {
			if n.Level == entry.LevelSuccess {
				return
			}
			if n.Err != nil {
				fmt.Fprintf(errOut, "%s (%v)\n", n.Message, n.Err)
				return
			}
			fmt.Fprintln(errOut, n.Message)
		})),
	)
	defer ctrl.Close()

	if req.Record {
		if err := ctrl.StartRecording(ctx); err != nil {
			return core.Note{}, err
		}
		select {
		case sess := <-tracker.started:
			select {
			case <-sess.Done():
			case <-ctx.Done():
			}
		case <-ctx.Done():
		}
		ctrl.StopRecording()
	} else {
		ctrl.StartEditing()
		ctrl.SetContent(strings.TrimRight(req.Text, "\n"))
	}

	if err := ctrl.Submit(); err != nil {
		return core.Note{}, err
	}
	return created, nil
}

// trackingRecognizer exposes started sessions so a caller can wait for the engine to finish.
type trackingRecognizer struct {
	speech.Recognizer
	started chan speech.Session
}

func (t *trackingRecognizer) Start(ctx context.Context, cfg speech.Config, h speech.Handlers) (speech.Session, error) {
	sess, err := t.Recognizer.Start(ctx, cfg, h)
	if err != nil {
		return nil, err
	}
	select {
	case t.started <- sess:
	default:
	}
	return sess, nil
}
