package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/rushteam/recblend/core"
	"github.com/rushteam/recblend/pkg/logging"
)

// Loader 使用内存模式的 DuckDB 读取 Parquet / CSV 快照文件。
//
// DuckDB 默认 preserve_insertion_order=true，读出的行顺序与文件一致，
// 因此每个 key 下的列表保持文件中的排名顺序，加载时不再重新排序。
type Loader struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewLoader 打开一个内存 DuckDB 连接。用完需要 Close。
func NewLoader() (*Loader, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &Loader{db: db, log: logging.WithComponent("snapshot")}, nil
}

func (l *Loader) Close() error {
	return l.db.Close()
}

// LoadRecommendations 加载个性化推荐（user_id, item_id, rank）与热门推荐（item_id, rank）。
func (l *Loader) LoadRecommendations(ctx context.Context, personalPath, popularPath string) (*RecommendationTable, error) {
	personal := make(map[int64][]int64)
	err := l.scan(ctx, personalPath, []string{"user_id", "item_id", "rank"}, func(rows *sql.Rows) error {
		var userID, itemID, rank int64
		if err := rows.Scan(&userID, &itemID, &rank); err != nil {
			return err
		}
		personal[userID] = append(personal[userID], itemID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var fallback []int64
	err = l.scan(ctx, popularPath, []string{"item_id", "rank"}, func(rows *sql.Rows) error {
		var itemID, rank int64
		if err := rows.Scan(&itemID, &rank); err != nil {
			return err
		}
		fallback = append(fallback, itemID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.Info().
		Str("personal_path", personalPath).
		Str("popular_path", popularPath).
		Int("users", len(personal)).
		Int("default_items", len(fallback)).
		Msg("recommendation snapshot loaded")
	return NewRecommendationTable(personal, fallback), nil
}

// LoadSimilarity 加载相似物品表（item_id_1, item_id_2, score）。
func (l *Loader) LoadSimilarity(ctx context.Context, path string) (*SimilarityIndex, error) {
	entries := make(map[int64][]core.SimilarityEntry)
	err := l.scan(ctx, path, []string{"item_id_1", "item_id_2", "score"}, func(rows *sql.Rows) error {
		var source, target int64
		var score float64
		if err := rows.Scan(&source, &target, &score); err != nil {
			return err
		}
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return fmt.Errorf("item_id_1=%d item_id_2=%d: non-finite score", source, target)
		}
		entries[source] = append(entries[source], core.SimilarityEntry{ItemID: target, Score: score})
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.log.Info().Str("path", path).Int("items", len(entries)).Msg("similarity snapshot loaded")
	return NewSimilarityIndex(entries), nil
}

// scan 读取 path 中的 columns 列，逐行回调 fn。任何错误都包装为 CORRUPT_SNAPSHOT。
func (l *Loader) scan(ctx context.Context, path string, columns []string, fn func(*sql.Rows) error) error {
	if path == "" {
		return core.CorruptSnapshot(nil, "snapshot: empty path for columns %v", columns)
	}
	if _, err := os.Stat(path); err != nil {
		return core.CorruptSnapshot(err, "snapshot: %s", path)
	}
	reader, err := readerFunc(path)
	if err != nil {
		return core.CorruptSnapshot(err, "snapshot: %s", path)
	}

	query := fmt.Sprintf("SELECT %s FROM %s(%s)", strings.Join(columns, ", "), reader, quoteLiteral(path))
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return core.CorruptSnapshot(err, "snapshot: query %s", path)
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return core.CorruptSnapshot(err, "snapshot: scan %s", path)
		}
	}
	if err := rows.Err(); err != nil {
		return core.CorruptSnapshot(err, "snapshot: read %s", path)
	}
	return nil
}

func readerFunc(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return "read_parquet", nil
	case ".csv", ".tsv":
		return "read_csv_auto", nil
	default:
		return "", fmt.Errorf("unsupported snapshot format %q", filepath.Ext(path))
	}
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
