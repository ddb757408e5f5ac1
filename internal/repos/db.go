package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the sqlite catalog, ensures the schema and, when seed is set,
// inserts demo partners/garments/occasions (idempotent).
func OpenDB(dsn string, seed bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection keeps ":memory:" databases alive and serializes writes
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if seed {
		if err := seedIfEmpty(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Partners (garment owners)
CREATE TABLE IF NOT EXISTS partners(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  approved INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Garments
CREATE TABLE IF NOT EXISTS garments(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES partners(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  color TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  image TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  visibility TEXT NOT NULL DEFAULT 'private' CHECK (visibility IN ('public','private')),
  skin_tones_json TEXT NOT NULL DEFAULT '[]',
  occasion_tags_json TEXT NOT NULL DEFAULT '[]',
  gender TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_garments_owner      ON garments(owner_id);
CREATE INDEX IF NOT EXISTS idx_garments_category   ON garments(category);
CREATE INDEX IF NOT EXISTS idx_garments_color      ON garments(color);
CREATE INDEX IF NOT EXISTS idx_garments_name       ON garments(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_garments_created_at ON garments(created_at);

-- Saved occasions
CREATE TABLE IF NOT EXISTS occasions(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  type TEXT NOT NULL DEFAULT '',
  date TEXT,
  location TEXT NOT NULL DEFAULT '',
  dress_code TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  skin_tone TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS occasion_wardrobe(
  occasion_id TEXT NOT NULL REFERENCES occasions(id) ON DELETE CASCADE,
  garment_id  TEXT NOT NULL,
  PRIMARY KEY (occasion_id, garment_id)
);

-- Garment views (one row per viewer)
CREATE TABLE IF NOT EXISTS garment_views(
  garment_id TEXT NOT NULL REFERENCES garments(id) ON DELETE CASCADE,
  viewer_id  TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (garment_id, viewer_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM partners`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo partners/garments/occasions")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO partners(id,name,location,phone,email,approved) VALUES
	  ('p-adire','Adire House','Lagos','+234-1-555-0101','hello@adire.test',1),
	  ('p-linea','Linea Studio','Milan','+39-02-555-0199','ciao@linea.test',1),
	  ('p-pending','Fresh Threads','Nairobi','+254-20-555-0123','team@fresh.test',0)`)

	tx.MustExec(`INSERT INTO garments(id,owner_id,name,category,color,brand,image,price,stock,visibility,skin_tones_json,occasion_tags_json,gender,created_at) VALUES
	  ('g-emerald-gown','p-adire','Emerald Silk Gown','dress','green','Adire','garments/g-emerald-gown.jpg',240.00,4,'public','["deep","dark","tan"]','["wedding","formal"]','female','2026-09-01T10:00:00Z'),
	  ('g-ivory-shirt','p-linea','Ivory Linen Shirt','shirt','white','Linea','garments/g-ivory-shirt.jpg',69.00,12,'public','[]','["casual","beach"]','','2026-09-03T09:30:00Z'),
	  ('g-navy-suit','p-linea','Navy Wool Suit','suit','navy','Linea','garments/g-navy-suit.jpg',420.00,3,'public','["fair","light","medium"]','["business","formal","wedding"]','male','2026-08-20T14:00:00Z'),
	  ('g-coral-skirt','p-adire','Coral Pleated Skirt','skirt','orange','Adire','garments/g-coral-skirt.jpg',85.00,6,'public','["medium","tan","deep"]','["party","casual"]','female','2026-09-05T08:15:00Z'),
	  ('g-black-jeans','p-linea','Black Slim Jeans','jeans','black','Linea','garments/g-black-jeans.jpg',59.00,20,'public','[]','[]','','2026-07-11T12:00:00Z'),
	  ('g-gold-clutch','p-adire','Gold Beaded Clutch','accessories','gold','Adire','garments/g-gold-clutch.jpg',45.00,9,'public','["dark","deep"]','["party","wedding"]','','2026-09-07T16:45:00Z'),
	  ('g-draft-blazer','p-linea','Camel Blazer (draft)','jacket','brown','Linea','',180.00,5,'private','[]','["business"]','','2026-09-08T10:00:00Z'),
	  ('g-soldout-tee','p-adire','Indigo Tee','t-shirt','blue','Adire','',25.00,0,'public','[]','["casual"]','','2026-09-09T10:00:00Z'),
	  ('g-pending-kaftan','p-pending','Sunset Kaftan','dress','yellow','Fresh','',99.00,7,'public','[]','["beach"]','female','2026-09-10T10:00:00Z')`)

	tx.MustExec(`INSERT INTO occasions(id,title,type,date,location,dress_code,notes,skin_tone) VALUES
	  ('o-wedding','Ada''s wedding','wedding','2026-11-14T15:00:00Z','Lagos','','Outdoor ceremony','dark'),
	  ('o-gala','Charity gala','other','2026-12-02T19:00:00Z','Milan','Black Tie','','')`)

	tx.MustExec(`INSERT INTO occasion_wardrobe(occasion_id,garment_id) VALUES
	  ('o-wedding','g-gold-clutch')`)

	return tx.Commit()
}
