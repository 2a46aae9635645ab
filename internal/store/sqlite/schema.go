package sqlite

// Table and index names, used by Verify and CheckState.
var (
	domainTables  = []string{"User", "Route", "POI", "Checkin", "Voucher"}
	domainIndexes = []string{
		"idx_checkin_user_route",
		"idx_checkin_poi",
		"idx_voucher_user_route",
		"idx_poi_route_order",
	}
)

// schemaStatements is applied in order inside one transaction.
// Every statement is create-if-absent so the schema can be re-applied.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS schema_migrations (
    version TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS "User" (
    "id" TEXT PRIMARY KEY,
    "walletAddress" TEXT NOT NULL UNIQUE,
    "walletType" TEXT NOT NULL DEFAULT 'evm',
    "nickname" TEXT,
    "role" TEXT NOT NULL DEFAULT 'user',
    "avatar" TEXT,
    "totalRoutes" INTEGER NOT NULL DEFAULT 0,
    "createdAt" DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS "Route" (
    "id" TEXT PRIMARY KEY,
    "name" TEXT NOT NULL,
    "description" TEXT,
    "coverImage" TEXT,
    "difficulty" TEXT NOT NULL DEFAULT 'medium',
    "estimatedTime" INTEGER NOT NULL,
    "poiCount" INTEGER NOT NULL DEFAULT 3,
    "nftCollection" TEXT,
    "isActive" INTEGER NOT NULL DEFAULT 1
)`,
	`CREATE TABLE IF NOT EXISTS "POI" (
    "id" TEXT PRIMARY KEY,
    "routeId" TEXT NOT NULL,
    "name" TEXT NOT NULL,
    "description" TEXT,
    "latitude" REAL NOT NULL,
    "longitude" REAL NOT NULL,
    "radius" INTEGER NOT NULL DEFAULT 50,
    "taskType" TEXT NOT NULL DEFAULT 'photo',
    "taskContent" TEXT,
    "order" INTEGER NOT NULL,
    FOREIGN KEY ("routeId") REFERENCES "Route"("id") ON DELETE CASCADE ON UPDATE CASCADE
)`,
	`CREATE TABLE IF NOT EXISTS "Checkin" (
    "id" TEXT PRIMARY KEY,
    "userId" TEXT NOT NULL,
    "routeId" TEXT NOT NULL,
    "poiId" TEXT NOT NULL,
    "signature" TEXT NOT NULL,
    "message" TEXT NOT NULL,
    "taskData" TEXT,
    "status" TEXT NOT NULL DEFAULT 'pending',
    "createdAt" DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY ("userId") REFERENCES "User"("id") ON DELETE CASCADE ON UPDATE CASCADE,
    FOREIGN KEY ("routeId") REFERENCES "Route"("id") ON DELETE CASCADE ON UPDATE CASCADE,
    FOREIGN KEY ("poiId") REFERENCES "POI"("id") ON DELETE CASCADE ON UPDATE CASCADE
)`,
	`CREATE TABLE IF NOT EXISTS "Voucher" (
    "id" TEXT PRIMARY KEY,
    "userId" TEXT NOT NULL,
    "routeId" TEXT NOT NULL,
    "status" TEXT NOT NULL DEFAULT 'pending',
    "nftTokenId" TEXT,
    "mintTxHash" TEXT,
    "metadata" TEXT,
    "createdAt" DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY ("userId") REFERENCES "User"("id") ON DELETE CASCADE ON UPDATE CASCADE,
    FOREIGN KEY ("routeId") REFERENCES "Route"("id") ON DELETE CASCADE ON UPDATE CASCADE
)`,
	`CREATE INDEX IF NOT EXISTS "idx_checkin_user_route" ON "Checkin"("userId", "routeId")`,
	`CREATE INDEX IF NOT EXISTS "idx_checkin_poi" ON "Checkin"("poiId")`,
	`CREATE INDEX IF NOT EXISTS "idx_voucher_user_route" ON "Voucher"("userId", "routeId")`,
	`CREATE INDEX IF NOT EXISTS "idx_poi_route_order" ON "POI"("routeId", "order")`,
}
