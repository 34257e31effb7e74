package cryptipic

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func BenchmarkEncodeDecode(b *testing.B) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	steg, err := Init(&Config{Logger: logger})
	require.NoError(b, err)

	transforms := []string{"spatial", "multibit", "frequency", "wavelet"}

	for _, name := range transforms {
		src := testImage(256, 256)
		opts := Options{Transform: name}
		payload := &Payload{Text: "benchmark payload with some realistic length to embed"}

		b.Run("Encode/"+name, func(b *testing.B) {
			b.ResetTimer()
			for n := 0; n < b.N; n++ {
				_, err := steg.Encode(src, payload, nil, opts)
				require.NoError(b, err)
			}
		})

		encoded, err := steg.Encode(src, payload, nil, opts)
		require.NoError(b, err)

		b.Run("Decode/"+name, func(b *testing.B) {
			b.ResetTimer()
			for n := 0; n < b.N; n++ {
				_, err := steg.Decode(encoded, "")
				require.NoError(b, err)
			}
		})
	}
}

// BenchmarkSealedEncode isolates the key-derivation cost of an encrypted
// payload from the carrier embedding itself.
func BenchmarkSealedEncode(b *testing.B) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	steg, err := Init(&Config{Logger: logger})
	require.NoError(b, err)

	src := testImage(256, 256)
	payload := &Payload{Text: "sealed benchmark payload", Password: "benchmark-password"}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_, err := steg.Encode(src, payload, nil, Options{})
		require.NoError(b, err)
	}
}
