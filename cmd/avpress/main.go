// Command avpress is the CLI front for the media compression toolkit.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/avpress/avpress/internal/compress"
	"github.com/avpress/avpress/internal/encoder"
	"github.com/avpress/avpress/internal/storage"
)

// EnvVarPrefix holds the environment variable prefix for CLI flags.
const EnvVarPrefix = "AVPRESS_"

func main() {
	app := cli.NewApp()
	app.Name = "avpress"
	app.Usage = "image resizing and video compression"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "ffmpeg",
			Usage:  "path to the ffmpeg binary",
			EnvVar: EnvVarPrefix + "FFMPEG",
		},
		cli.StringFlag{
			Name:   "tempdir",
			Usage:  "directory for temporary working files",
			EnvVar: EnvVarPrefix + "TEMPDIR",
		},
		cli.BoolFlag{
			Name:   "debug, d",
			Usage:  "debug logging",
			EnvVar: EnvVarPrefix + "DEBUG",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "resize-image",
			Usage:     "resize an image file",
			ArgsUsage: "<input file>",
			Action:    resizeImage,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "format, f",
					Usage: "target format (png, jpeg, gif, bmp, tiff, webp)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: ".",
					Usage: "output directory",
				},
				cli.IntFlag{
					Name:  "width, w",
					Usage: "target width in pixels",
				},
				cli.IntFlag{
					Name:  "height, H",
					Usage: "target height in pixels",
				},
			},
		},
		{
			Name:      "compress-video",
			Usage:     "compress a video file with the default tuning",
			ArgsUsage: "<input file>",
			Action:    compressVideo,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "format, f",
					Usage: "target container (mp4, mkv, flv, mov, avi, wmv)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: ".",
					Usage: "output directory",
				},
				cli.IntFlag{
					Name:  "width, w",
					Usage: "target width in pixels",
				},
				cli.IntFlag{
					Name:  "height, H",
					Usage: "target height in pixels",
				},
			},
		},
		{
			Name:      "convert-video",
			Usage:     "convert a video to another container without compression tuning",
			ArgsUsage: "<input file>",
			Action:    convertVideo,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "format, f",
					Usage: "target container (mp4, mkv, flv, mov, avi, wmv)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: ".",
					Usage: "output directory",
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newCompressor wires a Compressor from the global CLI flags.
func newCompressor(c *cli.Context) (*compress.Compressor, storage.Store, error) {
	level := slog.LevelInfo
	if c.GlobalBool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	store, err := storage.NewLocal(c.GlobalString("tempdir"))
	if err != nil {
		return nil, nil, err
	}

	enc := encoder.NewFFmpeg(c.GlobalString("ffmpeg"))
	return compress.New(enc, store, compress.WithLogger(logger)), store, nil
}

func inputArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.NewExitError("exactly one input file is required", 2)
	}
	return c.Args().First(), nil
}

func resizeImage(c *cli.Context) error {
	input, err := inputArg(c)
	if err != nil {
		return err
	}

	format, ok := compress.ParseImageFormat(c.String("format"))
	if !ok {
		return cli.NewExitError(fmt.Sprintf("unsupported image format %q", c.String("format")), 2)
	}

	comp, _, err := newCompressor(c)
	if err != nil {
		return err
	}

	res := compress.Resolution{Width: c.Int("width"), Height: c.Int("height")}
	msg, err := comp.ResizeImageFileToPath(context.Background(), input, format, c.String("out"), res)
	if err != nil {
		return err
	}

	fmt.Println(msg)
	return nil
}

func compressVideo(c *cli.Context) error {
	input, err := inputArg(c)
	if err != nil {
		return err
	}

	format, ok := compress.ParseVideoFormat(c.String("format"))
	if !ok {
		return cli.NewExitError(fmt.Sprintf("unsupported video format %q", c.String("format")), 2)
	}

	comp, _, err := newCompressor(c)
	if err != nil {
		return err
	}

	res := compress.Resolution{Width: c.Int("width"), Height: c.Int("height")}
	msg, err := comp.ReduceVideoSizeFileToPath(context.Background(), input, format, c.String("out"), res)
	if err != nil {
		return err
	}

	fmt.Println(msg)
	return nil
}

func convertVideo(c *cli.Context) error {
	input, err := inputArg(c)
	if err != nil {
		return err
	}

	format, ok := compress.ParseVideoFormat(c.String("format"))
	if !ok {
		return cli.NewExitError(fmt.Sprintf("unsupported video format %q", c.String("format")), 2)
	}

	comp, store, err := newCompressor(c)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(input) // #nosec G304 - path comes from the CLI user
	if err != nil {
		return err
	}

	out, err := comp.ConvertVideoFormat(context.Background(), data, format)
	if err != nil {
		return err
	}

	name := filepath.Base(input)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + "." + format.Ext()

	absPath, err := store.SaveOutput(context.Background(), c.String("out"), name, out)
	if err != nil {
		return err
	}

	fmt.Printf("File is saved in path::%s\n", absPath)
	return nil
}
