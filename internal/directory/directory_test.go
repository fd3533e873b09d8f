package directory_test

import (
	"errors"
	"testing"
	"time"

	"vanish/internal/directory"
	"vanish/internal/domain"
)

func mustCreate(t *testing.T, d *directory.Directory, owner domain.SessionID, ttl time.Duration, max int) domain.RoomID {
	t.Helper()
	id, err := d.Create(owner, ttl, max)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return id
}

func TestCreate_RejectsBadParameters(t *testing.T) {
	d := directory.New(time.Second, nil)
	if _, err := d.Create("a", 0, 4); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("ttl=0: got %v, want ErrInvalidParameter", err)
	}
	if _, err := d.Create("a", time.Minute, 0); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("max=0: got %v, want ErrInvalidParameter", err)
	}
}

func TestCreate_OwnerIsFirstMember(t *testing.T) {
	d := directory.New(time.Second, nil)
	room := mustCreate(t, d, "owner", time.Minute, 4)

	members, err := d.Members(room)
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if len(members) != 1 || members[0] != "owner" {
		t.Fatalf("members = %v, want [owner]", members)
	}
}

func TestJoin_Full(t *testing.T) {
	d := directory.New(time.Second, nil)
	room := mustCreate(t, d, "a", time.Minute, 2)

	if err := d.Join(room, "b"); err != nil {
		t.Fatalf("Join b: %v", err)
	}
	if err := d.Join(room, "c"); !errors.Is(err, domain.ErrRoomFull) {
		t.Fatalf("Join c: got %v, want ErrRoomFull", err)
	}
	// Rejoining an existing member is not a capacity violation.
	if err := d.Join(room, "b"); err != nil {
		t.Fatalf("rejoin b: %v", err)
	}
}

func TestJoin_UnknownRoom(t *testing.T) {
	d := directory.New(time.Second, nil)
	if err := d.Join("nope", "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestJoin_ExpiredRoom(t *testing.T) {
	d := directory.New(time.Second, nil)
	room := mustCreate(t, d, "a", time.Millisecond, 4)
	time.Sleep(5 * time.Millisecond)

	if err := d.Join(room, "b"); !errors.Is(err, domain.ErrRoomExpired) {
		t.Fatalf("got %v, want ErrRoomExpired", err)
	}
	if _, err := d.Members(room); !errors.Is(err, domain.ErrRoomExpired) {
		t.Fatalf("Members on expired room: got %v, want ErrRoomExpired", err)
	}
}

func TestLeave_Idempotent(t *testing.T) {
	d := directory.New(time.Second, nil)
	room := mustCreate(t, d, "a", time.Minute, 4)

	d.Leave(room, "a")
	d.Leave(room, "a")
	d.Leave("nope", "a")

	members, err := d.Members(room)
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("members = %v, want empty", members)
	}
}

func TestMembers_SnapshotIsDetached(t *testing.T) {
	d := directory.New(time.Second, nil)
	room := mustCreate(t, d, "a", time.Minute, 8)

	snapshot, err := d.Members(room)
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if err := d.Join(room, "late"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if len(snapshot) != 1 {
		t.Fatalf("snapshot grew after join: %v", snapshot)
	}
}

func TestReapExpired_TTL(t *testing.T) {
	d := directory.New(time.Hour, nil) // long grace so only TTL can reap
	room := mustCreate(t, d, "a", time.Minute, 4)

	if n := d.ReapExpired(time.Now()); n != 0 {
		t.Fatal("reaped live room")
	}
	if n := d.ReapExpired(time.Now().Add(2 * time.Minute)); n != 1 {
		t.Fatalf("reaped %d, want 1", n)
	}
	if _, err := d.Members(room); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("reaped room still visible: %v", err)
	}
}

func TestReapExpired_EmptyPastGrace(t *testing.T) {
	d := directory.New(time.Second, nil)
	room := mustCreate(t, d, "a", time.Hour, 4)
	d.Leave(room, "a")

	if n := d.ReapExpired(time.Now()); n != 0 {
		t.Fatal("reaped inside grace period")
	}
	if n := d.ReapExpired(time.Now().Add(2 * time.Second)); n != 1 {
		t.Fatalf("reaped %d, want 1", n)
	}
}

func TestDropMember_RemovesFromAllRooms(t *testing.T) {
	d := directory.New(time.Second, nil)
	r1 := mustCreate(t, d, "a", time.Minute, 4)
	r2 := mustCreate(t, d, "b", time.Minute, 4)
	if err := d.Join(r2, "a"); err != nil {
		t.Fatalf("Join: %v", err)
	}

	d.DropMember("a")

	for _, room := range []domain.RoomID{r1, r2} {
		members, err := d.Members(room)
		if err != nil {
			t.Fatalf("Members: %v", err)
		}
		for _, m := range members {
			if m == "a" {
				t.Fatalf("dropped member still in %s", room)
			}
		}
	}
}
