package model

import "testing"

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestSongPatchAppliesOnlyPresentFields(t *testing.T) {
	song := Song{Name: "old", Genre: "rock", SubLevel: 1, Artists: "band"}

	patch := SongPatch{Name: strPtr("new"), SubLevel: intPtr(2)}
	patch.Apply(&song)

	if song.Name != "new" || song.SubLevel != 2 {
		t.Fatalf("patched fields not applied: %+v", song)
	}
	if song.Genre != "rock" || song.Artists != "band" {
		t.Fatalf("absent fields must stay untouched: %+v", song)
	}
}

func TestSongPatchCanClearAlbum(t *testing.T) {
	albumID := int64(3)
	song := Song{AlbumID: &albumID}

	newAlbum := int64(9)
	SongPatch{AlbumID: &newAlbum}.Apply(&song)
	if song.AlbumID == nil || *song.AlbumID != 9 {
		t.Fatalf("AlbumID = %v, want 9", song.AlbumID)
	}
}

func TestUserPatchAppliesOnlyPresentFields(t *testing.T) {
	user := User{Name: "Ana", Location: "BA", Wallet: "0x1"}

	UserPatch{Location: strPtr("Rosario")}.Apply(&user)

	if user.Location != "Rosario" {
		t.Fatalf("Location = %q", user.Location)
	}
	if user.Name != "Ana" || user.Wallet != "0x1" {
		t.Fatalf("absent fields must stay untouched: %+v", user)
	}
}

func TestReviewPatch(t *testing.T) {
	score := 3
	review := Review{Score: &score}

	ReviewPatch{Text: strPtr("solid"), Score: intPtr(5)}.Apply(&review)

	if review.Text == nil || *review.Text != "solid" {
		t.Fatalf("Text = %v", review.Text)
	}
	if review.Score == nil || *review.Score != 5 {
		t.Fatalf("Score = %v", review.Score)
	}
}
