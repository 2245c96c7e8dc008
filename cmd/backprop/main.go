// Package main provides the backprop CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/playground"
)

const version = "v0.1.0-dev"

// Grid size of the ASCII decision map.
const (
	gridCols = 48
	gridRows = 16
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer) error {
	if len(args) == 0 {
		usage(w)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(w, "backprop %s\n", version)
		return nil
	case "help", "-h", "--help":
		usage(w)
		return nil
	}

	if _, ok := playground.Presets[args[0]]; ok {
		return train(args[0], args[1:], w)
	}
	usage(w)
	return fmt.Errorf("unknown command %q", args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "backprop - MLP training with backpropagation and SGD")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  xor          Classify the four XOR corners")
	fmt.Fprintln(w, "  regression   Fit a noisy line")
	fmt.Fprintln(w, "  moons        Classify two interleaving moons")
	fmt.Fprintln(w, "  version      Show version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'backprop <command> -h' for training flags.")
}

// train runs one preset experiment configured from flags.
func train(name string, args []string, w io.Writer) error {
	defaults, err := playground.Preset(name, 0)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	lr := fs.Float64("lr", defaults.LearningRate, "learning rate")
	epochs := fs.Int("epochs", defaults.Epochs, "number of epochs to train (continues from a loaded checkpoint)")
	hidden := fs.Int("hidden", defaults.Hidden(), "hidden layer width (0 = no hidden layer)")
	seed := fs.Int64("seed", defaults.Seed, "seed for initialization, data and shuffling")
	logEvery := fs.Int("log-every", 20, "print the loss every N epochs (0 = final only)")
	grid := fs.Bool("grid", false, "print an ASCII decision map after training")
	load := fs.String("load", "", "resume from a .bprp checkpoint")
	save := fs.String("save", "", "write a .bprp checkpoint after training")
	var act nn.Activation
	fs.TextVar(&act, "activation", defaults.Config.Hidden, "hidden activation: relu, tanh, sigmoid, linear")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%s: unexpected arguments %v", name, fs.Args())
	}

	exp := playground.Presets[name](*hidden, act).Reseed(*seed)
	exp.LearningRate = *lr
	exp.Epochs = *epochs

	s, err := playground.NewSession(exp)
	if err != nil {
		return err
	}
	if *load != "" {
		ckpt, err := nn.LoadCheckpoint(*load)
		if err != nil {
			return err
		}
		if err := s.Load(ckpt); err != nil {
			return err
		}
	}

	cfg := exp.Config
	fmt.Fprintf(w, "Experiment: %s\n", exp.Name)
	fmt.Fprintf(w, "  Layers:     %v (%d parameters)\n", exp.Layers, s.Model().NumParameters())
	fmt.Fprintf(w, "  Activation: %s hidden, %s output\n", cfg.Hidden, cfg.Output)
	fmt.Fprintf(w, "  Loss:       %s\n", cfg.Loss)
	fmt.Fprintf(w, "  Training:   lr=%g epochs=%d samples=%d seed=%d\n",
		exp.LearningRate, exp.Epochs, exp.Dataset.Len(), exp.Seed)
	if *load != "" {
		fmt.Fprintf(w, "  Resumed:    %s at epoch %d\n", *load, s.Epoch())
	}
	fmt.Fprintln(w)

	initial, err := s.Loss()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Epoch %4d  loss=%.6f\n", s.Epoch(), initial)

	chunk := *logEvery
	if chunk <= 0 {
		chunk = exp.Epochs
	}
	target := s.Epoch() + exp.Epochs
	for s.Epoch() < target {
		n := min(chunk, target-s.Epoch())
		losses, err := s.Step(n)
		if err != nil {
			return err
		}
		if *logEvery > 0 {
			fmt.Fprintf(w, "Epoch %4d  loss=%.6f\n", s.Epoch(), losses[len(losses)-1])
		}
	}

	if err := report(s, *grid, w); err != nil {
		return err
	}
	if *save == "" {
		return nil
	}
	ckpt, err := s.Checkpoint()
	if err != nil {
		return err
	}
	if err := ckpt.Save(*save); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nSaved checkpoint to %s (epoch %d)\n", *save, s.Epoch())
	return nil
}

// report prints final metrics for the trained session.
func report(s *playground.Session, grid bool, w io.Writer) error {
	exp := s.Experiment()
	model := s.Model()

	final, err := s.Loss()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nFinal loss: %.6f\n", final)

	if exp.Config.Loss == nn.BCE {
		acc, err := playground.Accuracy(model, exp.Dataset)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Accuracy:   %.2f%%\n", acc*100)
	}

	if len(exp.Layers) == 2 && model.InputSize() == 1 && model.OutputSize() == 1 {
		layer := model.Layers()[0]
		fmt.Fprintf(w, "Fit:        y = %.4f*x %+.4f\n", layer.Weight().At(0, 0), layer.Bias().AtVec(0))
	}

	if !grid {
		return nil
	}
	if model.InputSize() == 2 {
		g, err := playground.DecisionGrid(model, exp.Domain, gridCols, gridRows)
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		fmt.Fprint(w, renderGrid(g))
		return nil
	}

	xs, ys, err := playground.Curve(model, exp.Domain.XMin, exp.Domain.XMax, 8)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for i := range xs {
		fmt.Fprintf(w, "  f(%+.2f) = %+.4f\n", xs[i], ys[i])
	}
	return nil
}

// renderGrid draws values >= 0.5 as '#' and the rest as '.'.
func renderGrid(g playground.Grid) string {
	var b strings.Builder
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.At(c, r) >= 0.5 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
