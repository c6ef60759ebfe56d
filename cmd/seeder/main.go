package main

import (
	"context"
	"flag"
	"iter"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/goccy/go-json"
	"github.com/poiesic/moodshelf"
	"github.com/poiesic/moodshelf/core"
)

// sampleBook is a catalog entry together with the keywords it is seeded with.
type sampleBook struct {
	core.Book
	Keywords []string `json:"keywords"`
}

var samples = []sampleBook{
	{
		Book: core.Book{
			Title:       "달빛 조각사",
			Author:      "남희성",
			Description: "가상현실 게임 속에서 펼쳐지는 주인공의 성장과 모험 이야기. 감동과 재미가 가득한 판타지 소설.",
			CoverImage:  "https://images.unsplash.com/photo-1621944190272-ec775aad58d0?w=400",
		},
		Keywords: []string{"감동적인", "몰입감", "따뜻한", "재미있는", "희망적인"},
	},
	{
		Book: core.Book{
			Title:       "미움받을 용기",
			Author:      "기시미 이치로, 고가 후미타케",
			Description: "아들러 심리학을 바탕으로 한 자기계발서. 대화 형식으로 풀어낸 인생의 지혜.",
			CoverImage:  "https://images.unsplash.com/photo-1706195546853-a81b6a190daf?w=400",
		},
		Keywords: []string{"깊이있는", "통찰력있는", "위로가되는", "명료한", "자유로운"},
	},
	{
		Book: core.Book{
			Title:       "1984",
			Author:      "조지 오웰",
			Description: "전체주의 사회를 그린 디스토피아 소설. 현대 사회에 대한 날카로운 경고.",
			CoverImage:  "https://images.unsplash.com/photo-1551300329-dc0a750a7483?w=400",
		},
		Keywords: []string{"무겁고깊은", "충격적인", "암울한", "생각하게하는", "불안한"},
	},
	{
		Book: core.Book{
			Title:       "해리 포터와 마법사의 돌",
			Author:      "J.K. 롤링",
			Description: "마법 세계로 초대받은 소년 해리의 첫 번째 모험. 전 세계를 매료시킨 판타지 걸작.",
			CoverImage:  "https://images.unsplash.com/photo-1748630864655-1d95b79fc2f1?w=400",
		},
		Keywords: []string{"환상적인", "신비로운", "설레는", "즐거운", "모험적인"},
	},
	{
		Book: core.Book{
			Title:       "어린 왕자",
			Author:      "생텍쥐페리",
			Description: "사막에 불시착한 조종사가 어린 왕자를 만나 겪는 이야기. 순수함과 사랑의 의미를 담은 고전.",
			CoverImage:  "https://images.unsplash.com/photo-1621944190272-ec775aad58d0?w=400",
		},
		Keywords: []string{"순수한", "따뜻한", "감성적인", "잔잔한", "애틋한"},
	},
}

var (
	dbPath       = flag.String("db", "./moodshelf_db", "database directory")
	seedFileName = flag.String("src", "", "JSON file of books with keywords")
	maxExtra     = flag.Int("extra", 4, "maximum extra endorsements per keyword")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// booksFromFile returns an iterator over the books in a JSON file.
func booksFromFile(filename string) (iter.Seq[sampleBook], error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var books []sampleBook
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, err
	}
	return booksFromSlice(books), nil
}

// booksFromSlice returns an iterator over a slice of books.
func booksFromSlice(books []sampleBook) iter.Seq[sampleBook] {
	return func(yield func(sampleBook) bool) {
		for _, b := range books {
			if !yield(b) {
				return
			}
		}
	}
}

// seed adds each book and its keywords. Every keyword is re-submitted up
// to extra more times so the catalog starts with uneven scores.
func seed(ctx context.Context, db *moodshelf.Database, source iter.Seq[sampleBook], extra int) error {
	for sample := range source {
		book := sample.Book
		added, err := db.Catalog().Add(ctx, &book)
		if err != nil {
			return err
		}
		for _, kw := range sample.Keywords {
			endorsements := 1
			if extra > 0 {
				endorsements += rand.IntN(extra + 1)
			}
			for range endorsements {
				if _, err := db.AddKeyword(ctx, added.ID, kw, core.AnonymousUser); err != nil {
					return err
				}
			}
		}
		slog.Info("seeded book", "id", added.ID, "title", added.Title, "keywords", len(sample.Keywords))
	}
	return nil
}

func main() {
	flag.Parse()

	db, err := moodshelf.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[sampleBook]
	if seedFileName != nil && *seedFileName != "" {
		source, err = booksFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = booksFromSlice(samples)
	}

	if err := seed(ctx, db, source, *maxExtra); err != nil {
		panic(err)
	}
}
