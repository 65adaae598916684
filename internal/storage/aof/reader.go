package aof

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/zuhaib786/FerroDB/internal/protocol/resp"
)

// Load reads every command from the AOF at path, in order. A missing file
// is not an error — it just means there's nothing to replay yet, matching
// the original implementation's load_aof behavior.
func Load(path string) ([][][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var commands [][][]byte
	for {
		args, err := resp.ReadCommand(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return commands, err
		}
		commands = append(commands, args)
	}
	return commands, nil
}
