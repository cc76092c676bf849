package state

import (
	"context"
	"log"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"mdconv/common"
)

func TestContextWithEnv_Defaults(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	if env.start.IsZero() {
		t.Error("start time not set")
	}
	if env.Format != common.OutputFmtDocx {
		t.Errorf("Format = %s, want docx", env.Format)
	}
	if env.Overwrite || env.CodePage != nil {
		t.Errorf("unexpected defaults: overwrite %v, code page %v", env.Overwrite, env.CodePage)
	}
	if env.Cfg != nil || env.Rpt != nil || env.Log != nil {
		t.Error("configuration, report and log are prepared later")
	}

	other := EnvFromContext(ContextWithEnv(context.Background()))
	if other == env {
		t.Error("every context must get its own environment")
	}
}

func TestEnvFromContext(t *testing.T) {
	t.Run("derived context", func(t *testing.T) {
		ctx := ContextWithEnv(context.Background())
		// flags are set on the environment by the command action and read
		// later down the call chain under derived contexts
		EnvFromContext(ctx).Format = common.OutputFmtHTML
		EnvFromContext(ctx).Overwrite = true

		derived, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		env := EnvFromContext(derived)
		if env.Format != common.OutputFmtHTML || !env.Overwrite {
			t.Errorf("settings lost: format %s overwrite %v", env.Format, env.Overwrite)
		}
	})

	t.Run("missing env", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic when env is not in context")
			}
		}()
		EnvFromContext(context.Background())
	})
}

func TestLocalEnv_Logger(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		env := &LocalEnv{}
		l := env.Logger("convert")
		if l == nil {
			t.Fatal("Logger() must never return nil")
		}
		l.Info("dropped")
	})

	t.Run("named", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		env := &LocalEnv{Log: zap.New(core).Named("mdconv")}

		env.Logger("convert").Info("converting")
		env.Logger("main").Debug("started")

		entries := logs.AllUntimed()
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		for i, want := range []string{"mdconv.convert", "mdconv.main"} {
			if entries[i].LoggerName != want {
				t.Errorf("entry %d logger = %q, want %q", i, entries[i].LoggerName, want)
			}
		}
	})
}

func TestLocalEnv_StdLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	env := &LocalEnv{Log: zap.New(core)}

	env.RedirectStdLog()
	log.Print("from standard logger")
	env.RestoreStdLog()

	if n := logs.FilterMessage("from standard logger").Len(); n != 1 {
		t.Errorf("redirected messages = %d, want 1", n)
	}
	if env.restoreStdLog == nil {
		t.Error("restore function not kept")
	}

	// nothing to redirect without logger
	quiet := &LocalEnv{}
	quiet.RedirectStdLog()
	quiet.RestoreStdLog()
	if quiet.restoreStdLog != nil {
		t.Error("restore function set without logger")
	}
}

func TestLocalEnv_CodePage(t *testing.T) {
	// convert subcommand resolves --input-cp through IANA registry
	enc, err := ianaindex.IANA.Encoding("windows-1251")
	if err != nil || enc == nil {
		t.Fatalf("IANA lookup failed: %v", err)
	}
	env := &LocalEnv{CodePage: enc}

	got, err := env.CodePage.NewDecoder().Bytes([]byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2})
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if string(got) != "Привет" {
		t.Errorf("decoded %q", got)
	}
	if env.CodePage != charmap.Windows1251 {
		t.Errorf("unexpected encoding %v", env.CodePage)
	}
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now().Add(-time.Second)}
	if up := env.Uptime(); up < time.Second || up > time.Minute {
		t.Errorf("Uptime() = %v", up)
	}
}
