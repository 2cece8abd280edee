package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	ierrors "github.com/Aman-CERP/installcheck/internal/errors"
)

// snapshotScript runs inside the target runtime and prints one JSON object.
// It sticks to syntax accepted by PHP 5.3 so old runtimes can still be
// inspected and rejected with a proper report.
const snapshotScript = `$f = get_defined_functions();
$c = array();
foreach (array('GD_VERSION', 'PHP_OS', 'PHP_BINARY') as $n) {
	if (defined($n)) { $c[$n] = (string) constant($n); }
}
$i = array();
foreach (ini_get_all(null, false) as $k => $v) { $i[$k] = (string) $v; }
echo json_encode(array(
	'version' => PHP_MAJOR_VERSION . '.' . PHP_MINOR_VERSION . '.' . PHP_RELEASE_VERSION,
	'full_version' => PHP_VERSION,
	'sapi' => PHP_SAPI,
	'extensions' => get_loaded_extensions(),
	'functions' => $f['internal'],
	'classes' => get_declared_classes(),
	'constants' => (object) $c,
	'ini' => (object) $i,
	'temp_dir' => sys_get_temp_dir(),
));`

// Collect runs the PHP CLI at binary and decodes its registry snapshot.
// The context bounds the child process.
func Collect(ctx context.Context, binary string) (*Snapshot, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, ierrors.New(ierrors.ErrCodeRuntimeNotFound, fmt.Sprintf("php binary %q not found", binary), err).
			WithDetail("binary", binary).
			WithSuggestion("Install the PHP CLI or pass --php with its path")
	}

	cmd := exec.CommandContext(ctx, path, "-d", "display_errors=stderr", "-r", snapshotScript)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	slog.Debug("collecting runtime snapshot", slog.String("binary", path))
	out, err := cmd.Output()
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return nil, ierrors.New(ierrors.ErrCodeRuntimeTimeout, fmt.Sprintf("php binary %s did not answer in time", path), ctxErr).
			WithDetail("binary", path).
			WithSuggestion("Raise php.timeout or INSTALLCHECK_TIMEOUT")
	}
	if err != nil {
		ce := ierrors.RuntimeError(fmt.Sprintf("run %s", path), err).
			WithDetail("binary", path)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			ce = ce.WithDetail("stderr", msg)
		}
		return nil, ce
	}

	snap, err := DecodeSnapshot(out)
	if err != nil {
		var ce *ierrors.CheckError
		if errors.As(err, &ce) {
			return nil, ce.WithDetail("binary", path)
		}
		return nil, err
	}
	snap.Binary = path
	slog.Debug("runtime snapshot collected",
		slog.String("binary", path),
		slog.String("version", snap.Version),
		slog.Int("extensions", len(snap.Extensions)))
	return snap, nil
}
