package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/libklein/nand2tetris/jackcompiler/internal/compiler"
	"github.com/libklein/nand2tetris/jackcompiler/internal/tokenizer"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func removeExtension(filePath string) string {
	extension := filepath.Ext(filePath)
	return filePath[:len(filePath)-len(extension)]
}

func getClassName(filePath string) string {
	return removeExtension(filepath.Base(filePath))
}

func getOutputPath(filePath, outDir string) string {
	if outDir == "" {
		return removeExtension(filePath) + ".vm"
	}
	return filepath.Join(outDir, getClassName(filePath)+".vm")
}

// compileFile compiles the single class read from r.
func compileFile(r io.Reader) (className, code string, err error) {
	tokens, err := tokenizer.Tokenize(r)
	if err != nil {
		return "", "", err
	}
	c := compiler.NewCompiler(tokens)
	code, err = c.CompileClass()
	return c.ClassName(), code, err
}

// processFile compiles path and writes the result. Nothing is written when
// compilation fails.
func processFile(path, outDir string) (outputPath string, err error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "could not open file %q for reading", path)
	}

	className, code, err := compileFile(bytes.NewReader(source))
	if err != nil {
		return "", err
	}
	if className != getClassName(path) {
		log.Warnf("class %s is declared in %q", className, path)
	}

	outputPath = getOutputPath(path, outDir)
	if err := os.WriteFile(outputPath, []byte(code), 0644); err != nil {
		return outputPath, errors.Wrapf(err, "could not write output file %q", outputPath)
	}
	return outputPath, nil
}

// collectFiles expands each argument into the .jack files it names. A
// directory contributes the .jack files directly inside it.
func collectFiles(filesOrDirs []string) (files []string, err error) {
	for _, fileOrDir := range filesOrDirs {
		stat, err := os.Stat(fileOrDir)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot stat file/dir %q", fileOrDir)
		}
		if !stat.IsDir() {
			files = append(files, fileOrDir)
			continue
		}

		entries, err := os.ReadDir(fileOrDir)
		if err != nil {
			return nil, errors.Wrapf(err, "could not open directory %q", fileOrDir)
		}
		for _, entry := range entries {
			if !entry.IsDir() && filepath.Ext(entry.Name()) == ".jack" {
				files = append(files, filepath.Join(fileOrDir, entry.Name()))
			}
		}
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no .jack files found in %v", filesOrDirs)
	}
	return files, nil
}

// compileAll compiles every file with its own compiler, at most cfg.Jobs at
// a time. A failing file does not stop the others; all failures are
// returned together.
func compileAll(files []string, cfg Config) error {
	if cfg.Out != "" {
		if err := os.MkdirAll(cfg.Out, 0755); err != nil {
			return errors.Wrapf(err, "could not create output directory %q", cfg.Out)
		}
	}

	var (
		mu     sync.Mutex
		result *multierror.Error
		group  errgroup.Group
	)
	group.SetLimit(cfg.Jobs)
	for _, file := range files {
		file := file
		group.Go(func() error {
			log.Infof("Compiling file %q", file)
			outputPath, err := processFile(file, cfg.Out)
			if err != nil {
				log.Errorf("Failed to compile %q: %v", file, err)
				mu.Lock()
				result = multierror.Append(result, errors.Wrap(err, file))
				mu.Unlock()
				return nil
			}
			log.Infof("Saved as %q", outputPath)
			return nil
		})
	}
	group.Wait()
	return result.ErrorOrNil()
}
