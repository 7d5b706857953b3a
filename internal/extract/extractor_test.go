package extract_test

import (
	"strings"
	"testing"

	"github.com/hyperifyio/goseo/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure ArticleExtractor implements extract.Extractor at compile time.
var _ extract.Extractor = extract.ArticleExtractor{}

const articleHTML = `<!DOCTYPE html>
<html lang="id">
<head>
<title>Cara Membuat Website untuk Pemula | Contoh Blog</title>
<meta name="description" content="Panduan lengkap cara membuat website untuk pemula.">
<meta name="author" content="Budi Santoso">
<meta property="og:title" content="Cara Membuat Website untuk Pemula">
<meta property="og:image" content="https://blog.example.com/img/cover.jpg">
<meta property="article:published_time" content="2024-03-05T08:00:00+07:00">
</head>
<body>
<nav><a href="/">Beranda</a><a href="/kategori">Kategori</a></nav>
<article>
<h1>Cara Membuat Website untuk Pemula</h1>
<p>Membuat website kini semakin mudah. Menurut data dari Asosiasi Penyelenggara Jasa Internet, jumlah pengguna internet terus bertambah setiap tahun.</p>
<h2>Menentukan Tujuan Website</h2>
<p>Langkah pertama dalam cara membuat website adalah menentukan tujuan. Tujuan yang jelas membantu Anda memilih platform yang tepat untuk kebutuhan bisnis maupun pribadi.</p>
<h2>Memilih Domain dan Hosting</h2>
<p>Setelah tujuan jelas, pilih nama domain yang mudah diingat dan layanan hosting yang andal. Dilansir dari situs resmi penyedia hosting, kecepatan server sangat berpengaruh.</p>
<h3>Tips Memilih Hosting</h3>
<p>Perhatikan kapasitas penyimpanan, dukungan teknis, dan harga layanan sebelum membeli paket hosting untuk website Anda.</p>
<img src="https://blog.example.com/img/langkah-1.png" alt="Langkah pertama">
</article>
<footer>Hak cipta 2024 Contoh Blog</footer>
</body>
</html>`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("extracts text and metadata", func(t *testing.T) {
		t.Parallel()

		a, err := extract.Parse("https://blog.example.com/cara-membuat-website", []byte(articleHTML))
		require.NoError(t, err)

		assert.Contains(t, a.Title, "Cara Membuat Website")
		assert.Contains(t, a.Text, "Langkah pertama dalam cara membuat website")
		assert.NotContains(t, a.Text, "Hak cipta 2024")
		assert.Equal(t, "https://blog.example.com/cara-membuat-website", a.URL)
		assert.NotNil(t, a.Authors)
		assert.NotEmpty(t, a.HTML)
	})

	t.Run("content html keeps article images", func(t *testing.T) {
		t.Parallel()

		a, err := extract.Parse("https://blog.example.com/cara-membuat-website", []byte(articleHTML))
		require.NoError(t, err)

		assert.True(t, strings.Contains(a.ContentHTML, "langkah-1.png"), "content html: %s", a.ContentHTML)
	})

	t.Run("empty body is an error", func(t *testing.T) {
		t.Parallel()

		_, err := extract.Parse("https://blog.example.com/", []byte("   "))
		require.ErrorIs(t, err, extract.ErrEmptyDocument)
	})

	t.Run("invalid url is an error", func(t *testing.T) {
		t.Parallel()

		_, err := extract.Parse("http://[::1", []byte(articleHTML))
		require.Error(t, err)
	})
}
