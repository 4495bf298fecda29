package products

const productColumns = `
	id::text,
	external_id,
	name,
	description,
	price,
	condition,
	image_url,
	product_url,
	category,
	availability,
	company,
	metadata,
	search_terms,
	is_test_data,
	created_at,
	updated_at
`

const queryFindByKey = `
	SELECT ` + productColumns + `
	FROM products
	WHERE external_id = $1 AND company = $2
`

const queryUpsert = `
	INSERT INTO products (
		id, external_id, name, description, price, condition,
		image_url, product_url, category, availability, company,
		metadata, search_terms, embedding, is_test_data
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (external_id, company) DO UPDATE SET
		name = EXCLUDED.name,
		description = EXCLUDED.description,
		price = EXCLUDED.price,
		condition = EXCLUDED.condition,
		image_url = EXCLUDED.image_url,
		product_url = EXCLUDED.product_url,
		category = EXCLUDED.category,
		availability = EXCLUDED.availability,
		metadata = EXCLUDED.metadata,
		search_terms = EXCLUDED.search_terms,
		embedding = COALESCE(EXCLUDED.embedding, products.embedding),
		is_test_data = EXCLUDED.is_test_data,
		updated_at = NOW()
`

const queryList = `
	SELECT ` + productColumns + `
	FROM products
	WHERE is_test_data = false
	ORDER BY updated_at DESC
	LIMIT $1 OFFSET $2
`

const queryCount = `
	SELECT COUNT(*) FROM products WHERE is_test_data = false
`

const queryGetByID = `
	SELECT ` + productColumns + `
	FROM products
	WHERE id = $1
`

const queryFindMissing = `
	SELECT ` + productColumns + `
	FROM products
	WHERE company = $1
	  AND is_test_data = $2
	  AND NOT (external_id = ANY($3))
`

const queryDeleteByKey = `
	DELETE FROM products WHERE external_id = $1 AND company = $2
`
