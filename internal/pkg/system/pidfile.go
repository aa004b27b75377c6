package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
)

func SavePID(path string, pid int) error {
	if path == "" {
		return errors.New("ruta del archivo PID no informada")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("falla al crear el directorio del PID: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("el archivo PID ya existe en %s - el servidor puede estar en ejecución", path)
	}

	return os.WriteFile(path, []byte(fmt.Sprintf("%d", pid)), 0o644)
}

func LoadPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("falla al leer el archivo PID: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("PID inválido en %s: %w", path, err)
	}
	return pid, nil
}

func RemovePID(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}

func TerminateProcess(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("no se pudo localizar el proceso %d: %w", pid, err)
	}

	if runtime.GOOS == "windows" {
		return proc.Kill()
	}
	return proc.Signal(syscall.SIGTERM)
}
