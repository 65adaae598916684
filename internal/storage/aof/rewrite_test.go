package aof

import (
	"testing"

	"github.com/zuhaib786/FerroDB/internal/storage/keyspace"
)

func TestBuildRewriteCommandsPerType(t *testing.T) {
	dumps := []keyspace.KeyDump{
		{Key: "s", Kind: keyspace.KindString, Str: "v"},
		{Key: "l", Kind: keyspace.KindList, List: []string{"a", "b"}},
		{Key: "set", Kind: keyspace.KindSet, Set: []string{"m"}},
		{Key: "z", Kind: keyspace.KindSortedSet, ZSet: []keyspace.ZRankMember{{Member: "m", Score: 1.5}}},
		{Key: "ttl", Kind: keyspace.KindString, Str: "x", ExpiresAt: 123456},
	}
	cmds := BuildRewriteCommands(dumps)

	var names []string
	for _, c := range cmds {
		names = append(names, string(c[0]))
	}
	want := []string{"SET", "RPUSH", "SADD", "ZADD", "SET", "EXPIREAT"}
	if len(names) != len(want) {
		t.Fatalf("got %v want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v want %v", names, want)
		}
	}
}

func TestBuildRewriteCommandsSkipsEmptyContainers(t *testing.T) {
	dumps := []keyspace.KeyDump{
		{Key: "l", Kind: keyspace.KindList, List: nil},
		{Key: "set", Kind: keyspace.KindSet, Set: nil},
	}
	if cmds := BuildRewriteCommands(dumps); len(cmds) != 0 {
		t.Fatalf("expected no commands for empty containers, got %v", cmds)
	}
}
