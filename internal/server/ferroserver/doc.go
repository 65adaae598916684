// Package ferroserver implements the RESP-compatible network server: the
// accept loop, per-connection framing, and the command dispatcher that
// turns parsed command arguments into keyspace operations, AOF entries,
// and pub/sub publishes.
//
// Supported commands:
//   - Strings: GET, SET, MGET, MSET
//   - Generic: DEL, EXISTS, EXPIRE, EXPIREAT, PERSIST, TTL
//   - Lists: LPUSH, RPUSH, LPOP, RPOP, LRANGE, LLEN
//   - Sets: SADD, SREM, SMEMBERS, SCARD, SISMEMBER, SINTER, SUNION, SDIFF
//   - Sorted sets: ZADD, ZREM, ZSCORE, ZRANGE, ZRANK, ZCARD
//   - Pub/Sub: SUBSCRIBE, UNSUBSCRIBE, PUBLISH
//   - Admin: PING, QUIT, DBSIZE, SAVE, BGSAVE, BGREWRITEAOF, FLUSHALL
package ferroserver
