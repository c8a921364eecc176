package catalog

import "context"

// Repository はカタログの全データアクセスを統合するインターフェース
type Repository interface {
	// GetByID はIDで商品を取得する。存在しない場合は ErrProductNotFound を返す
	GetByID(ctx context.Context, id int64) (*Product, error)

	// List は全商品をID昇順で取得する
	List(ctx context.Context) ([]*Product, error)

	// Create は商品を作成し、採番されたIDとcreated_atを反映して返す
	Create(ctx context.Context, product *Product) (*Product, error)

	// Update は商品の全フィールド（Embedding含む）を更新する
	Update(ctx context.Context, product *Product) (*Product, error)

	// Delete は商品を削除する。以降の検索には一切現れない
	Delete(ctx context.Context, id int64) error

	// ListMissingEmbeddings はEmbedding未設定の行をID昇順で取得する
	// 在庫状態は問わない
	ListMissingEmbeddings(ctx context.Context) ([]*Product, error)

	// ListSearchable はEmbedding設定済みかつ在庫ありの行を取得する
	ListSearchable(ctx context.Context) ([]*Product, error)

	// ListMissingTranslations はローカライズ項目が未設定の行をID昇順で取得する
	ListMissingTranslations(ctx context.Context) ([]*Product, error)

	// Save は行の全状態（Embedding含む）を永続化する。冪等
	Save(ctx context.Context, product *Product) error

	// UpdateCategory は商品のカテゴリのみを更新する
	UpdateCategory(ctx context.Context, id int64, category string) error
}
