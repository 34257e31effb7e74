// Command cryptipic hides a text message (and optional decoy messages)
// inside a PNG image, or recovers a hidden message with its password.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	cryptipic "github.com/sohamsharma21/cryptipic-45-sub001"
)

// decoyList collects repeated -decoy flags of the form "password=text".
type decoyList []cryptipic.Payload

func (d *decoyList) String() string { return fmt.Sprintf("%d decoys", len(*d)) }

func (d *decoyList) Set(v string) error {
	password, text, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("decoy must be password=text, got %q", v)
	}
	*d = append(*d, cryptipic.Payload{Text: text, Password: password, Priority: len(*d) + 1})
	return nil
}

func main() {
	op := flag.String("op", "encode", "encode or decode")
	in := flag.String("in", "", "input PNG file")
	out := flag.String("out", "", "output PNG file (encode only)")
	msg := flag.String("msg", "", "message to hide (encode only)")
	password := flag.String("password", "", "payload password; empty stores plaintext")
	transformName := flag.String("transform", "spatial", "spatial, frequency, wavelet or multibit")
	cipherName := flag.String("cipher", "", "aes-gcm (default), chacha20 or aes-ctr")
	compression := flag.String("compress", "", "optional compression: zstd or lzma")
	verbose := flag.Bool("v", false, "debug logging")
	var decoys decoyList
	flag.Var(&decoys, "decoy", "decoy payload as password=text (repeatable)")
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	steg, err := cryptipic.Init(&cryptipic.Config{Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing codec: %v\n", err)
		os.Exit(1)
	}

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Error: -in is required")
		os.Exit(1)
	}

	buf, err := loadPNG(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch *op {
	case "encode":
		if *out == "" {
			fmt.Fprintln(os.Stderr, "Error: -out is required for encode")
			os.Exit(1)
		}
		primary := &cryptipic.Payload{Text: *msg, Password: *password}
		opts := cryptipic.Options{
			Transform:   *transformName,
			Cipher:      *cipherName,
			Compression: *compression,
		}
		encoded, err := steg.Encode(buf, primary, decoys, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding message: %v\n", err)
			os.Exit(1)
		}
		if err := savePNG(*out, encoded); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing image: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Embedded %d payload(s) into %s\n", 1+len(decoys), *out)

	case "decode":
		text, err := steg.Decode(buf, *password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding message: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(text)

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown operation %q\n", *op)
		os.Exit(1)
	}
}

// loadPNG decodes a PNG file into an owned RGBA pixel buffer.
func loadPNG(path string) (*cryptipic.PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptipic.ErrImageLoad, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptipic.ErrImageLoad, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &cryptipic.PixelBuffer{
		Pix:    rgba.Pix,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// savePNG writes a pixel buffer as a PNG file.
func savePNG(path string, buf *cryptipic.PixelBuffer) error {
	rgba := &image.RGBA{
		Pix:    buf.Pix,
		Stride: buf.Width * 4,
		Rect:   image.Rect(0, 0, buf.Width, buf.Height),
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, rgba); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
