package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// APKGGenerator creates Anki package files (.apkg)
type APKGGenerator struct {
	deckName string
	deckID   int64
	modelID  int64
	cards    []Card
	now      func() time.Time
}

// NewAPKGGenerator creates a new APKG generator
func NewAPKGGenerator(deckName string) *APKGGenerator {
	// Generate IDs based on timestamp to ensure uniqueness
	now := time.Now().UnixMilli()
	return &APKGGenerator{
		deckName: deckName,
		deckID:   now,
		modelID:  now + 1,
		cards:    make([]Card, 0),
		now:      time.Now,
	}
}

// AddCard adds a card to the generator
func (g *APKGGenerator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GenerateAPKG creates an .apkg file
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "martian_export_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// No media is shipped, Anki still expects the mapping file
	if err := os.WriteFile(filepath.Join(tempDir, "media"), []byte("{}"), 0644); err != nil {
		return fmt.Errorf("failed to create media mapping: %w", err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := createZipPackage(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}

	return nil
}

func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, query := range schema {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	if err := g.insertCollection(tx); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}

	if err := g.insertNotesAndCards(tx); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}

	return tx.Commit()
}

// schema is the Anki 2.1 collection layout (schema version 11)
var schema = []string{
	`CREATE TABLE col (
		id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
		scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL,
		usn integer NOT NULL, ls integer NOT NULL, conf text NOT NULL,
		models text NOT NULL, decks text NOT NULL, dconf text NOT NULL,
		tags text NOT NULL
	)`,
	`CREATE TABLE notes (
		id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
		mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL,
		flds text NOT NULL, sfld text NOT NULL, csum integer NOT NULL,
		flags integer NOT NULL, data text NOT NULL
	)`,
	`CREATE TABLE cards (
		id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
		ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL,
		type integer NOT NULL, queue integer NOT NULL, due integer NOT NULL,
		ivl integer NOT NULL, factor integer NOT NULL, reps integer NOT NULL,
		lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
		odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL
	)`,
	`CREATE TABLE revlog (
		id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
		ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL,
		factor integer NOT NULL, time integer NOT NULL, type integer NOT NULL
	)`,
	`CREATE TABLE graves (usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL)`,
	`CREATE INDEX ix_notes_usn ON notes (usn)`,
	`CREATE INDEX ix_cards_usn ON cards (usn)`,
	`CREATE INDEX ix_cards_nid ON cards (nid)`,
	`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
	`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
	`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
}

func deckConfig(id int64, name, desc string, mod int64) map[string]any {
	return map[string]any{
		"id": id, "name": name, "desc": desc, "mod": mod,
		"collapsed": false, "browserCollapsed": false,
		"dyn": 0, "conf": 1, "usn": 0,
		"newToday": []int{0, 0}, "revToday": []int{0, 0},
		"lrnToday": []int{0, 0}, "timeToday": []int{0, 0},
		"extendNew": 10, "extendRev": 50,
	}
}

func (g *APKGGenerator) insertCollection(tx *sql.Tx) error {
	now := g.now().Unix()

	decks, err := json.Marshal(map[string]any{
		"1": deckConfig(1, "Default", "", now),
		fmt.Sprint(g.deckID): deckConfig(g.deckID, g.deckName,
			"Alien alphabet cards created by martian", now),
	})
	if err != nil {
		return err
	}

	models, err := json.Marshal(map[string]any{
		fmt.Sprint(g.modelID): g.noteType(now),
	})
	if err != nil {
		return err
	}

	conf, err := json.Marshal(map[string]any{
		"nextPos": 1, "estTimes": true, "activeDecks": []int64{1},
		"sortType": "noteFld", "sortBackwards": false, "addToCur": true,
		"curDeck": 1, "newSpread": 0, "dueCounts": true,
		"collapseTime": 1200, "timeLim": 0, "schedVer": 1,
		"curModel": fmt.Sprint(g.modelID), "dayLearnFirst": false,
	})
	if err != nil {
		return err
	}

	dconf, err := json.Marshal(map[string]any{
		"1": map[string]any{
			"id": 1, "name": "Default", "dyn": 0, "usn": 0, "mod": now,
			"new": map[string]any{
				"delays": []int{1, 10}, "ints": []int{1, 4, 7},
				"initialFactor": 2500, "perDay": 26, "order": 1,
				"bury": true, "separate": true,
			},
			"lapse": map[string]any{
				"delays": []int{10}, "mult": 0, "minInt": 1,
				"leechFails": 8, "leechAction": 0,
			},
			"rev": map[string]any{
				"perDay": 100, "ease4": 1.3, "fuzz": 0.05, "maxIvl": 36500,
				"ivlFct": 1, "bury": true, "minSpace": 1,
			},
			"timer": 0, "maxTaken": 60, "autoplay": false, "replayq": false,
		},
	})
	if err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1, now, now*1000, now*1000, 11, 0, 0, 0,
		string(conf), string(models), string(decks), string(dconf), "{}")
	return err
}

func (g *APKGGenerator) noteType(mod int64) map[string]any {
	field := func(name string, ord int) map[string]any {
		return map[string]any{
			"name": name, "ord": ord, "sticky": false, "rtl": false,
			"font": "Arial", "size": 20, "media": []string{},
		}
	}
	tmpl := func(name string, ord int, front, back string) map[string]any {
		return map[string]any{
			"name": name, "ord": ord, "qfmt": front, "afmt": back,
			"did": nil, "bqfmt": "", "bafmt": "",
		}
	}

	return map[string]any{
		"id":    g.modelID,
		"name":  "Alien Alphabet (Basic + Reverse)",
		"type":  0,
		"mod":   mod,
		"usn":   -1,
		"sortf": 0,
		"did":   g.deckID,
		"req":   [][]any{{0, "all", []int{0}}, {1, "all", []int{1}}},
		"vers":  []int{},
		"tags":  []string{},
		"flds":  []map[string]any{field("English", 0), field("Alien", 1), field("Notes", 2)},
		"tmpls": []map[string]any{
			tmpl("Forward", 0, `<div class="english">{{English}}</div>`,
				`{{FrontSide}}<hr id="answer"><div class="alien">{{Alien}}</div>{{#Notes}}<div class="notes">{{Notes}}</div>{{/Notes}}`),
			tmpl("Reverse", 1, `<div class="alien">{{Alien}}</div>`,
				`{{FrontSide}}<hr id="answer"><div class="english">{{English}}</div>{{#Notes}}<div class="notes">{{Notes}}</div>{{/Notes}}`),
		},
		"css": cardCSS,
		"latexPre": `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\pagestyle{empty}
\begin{document}`,
		"latexPost": `\end{document}`,
	}
}

const cardCSS = `.card { font-family: Arial, sans-serif; text-align: center; color: #e0f7ff; background-color: #0b0b1e; }
.english { font-size: 36px; font-weight: bold; color: #67e8f9; }
.alien { font-size: 56px; color: #f0abfc; }
.notes { font-size: 14px; color: #94a3b8; font-style: italic; }
hr#answer { border: 0; border-top: 1px solid #334155; }`

func (g *APKGGenerator) insertNotesAndCards(tx *sql.Tx) error {
	now := g.now()

	noteStmt, err := tx.Prepare(`INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer noteStmt.Close()

	cardStmt, err := tx.Prepare(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer cardStmt.Close()

	for i, card := range g.cards {
		// Leave room for two cards per note
		noteID := now.UnixMilli() + int64(i*3)

		// Fields are separated by ASCII 31
		fields := strings.Join([]string{card.English, card.Alien, card.Notes}, "\x1f")
		guid := fmt.Sprintf("mt_%d_%d", g.deckID, i)

		if _, err := noteStmt.Exec(noteID, guid, g.modelID, now.Unix(), -1, "",
			fields, card.English, 0, 0, ""); err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		for ord := 0; ord < 2; ord++ {
			cardID := noteID + int64(ord) + 1
			// id, nid, did, ord, mod, usn, type, queue, due, then zeroed scheduling
			if _, err := cardStmt.Exec(cardID, noteID, g.deckID, ord, now.Unix(), -1,
				0, 0, i*2+ord+1, 0, 0, 0, 0, 0, 0, 0, 0, ""); err != nil {
				return fmt.Errorf("failed to insert card %d of note %d: %w", ord, i, err)
			}
		}
	}

	return nil
}

// createZipPackage zips every file of dir into outputPath
func createZipPackage(dir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := addZipFile(archive, filepath.Join(dir, entry.Name()), entry.Name()); err != nil {
			return err
		}
	}

	return archive.Close()
}

func addZipFile(archive *zip.Writer, path, name string) error {
	w, err := archive.Create(name)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
